package leakgate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leakgate/leakgate/internal/decision"
	"github.com/spf13/cobra"
)

type decisionFlags struct {
	dir        string
	model      string
	input      string
	output     string
	confidence float64
	rawInput   bool
	context    string
}

func newDecisionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "decision", Short: "Record and fingerprint automated decisions"}

	var f decisionFlags
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Append one decision to the decision log",
		Long: "Appends a decision record to " + decision.FileName + " in --dir. The input is stored " +
			"as a short hash unless --raw-input is given. --input, --output and --context take JSON; " +
			"anything that is not valid JSON is stored as a string.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runDecisionLog(f)
		},
	}
	logCmd.Flags().StringVar(&f.dir, "dir", "", "directory holding the decision log (default: decision_dir from config, else .)")
	logCmd.Flags().StringVar(&f.model, "model", "", "name of the model that made the decision")
	logCmd.Flags().StringVar(&f.input, "input", "null", "decision input")
	logCmd.Flags().StringVar(&f.output, "output", "null", "decision output")
	logCmd.Flags().Float64Var(&f.confidence, "confidence", 0, "confidence in [0,1]")
	logCmd.Flags().BoolVar(&f.rawInput, "raw-input", false, "store the input verbatim instead of its hash")
	logCmd.Flags().StringVar(&f.context, "context", "", "JSON object with extra context")
	_ = logCmd.MarkFlagRequired("model")

	hashCmd := &cobra.Command{
		Use:   "hash <json>",
		Short: "Print the short hash used to reference a decision input",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, decision.Hash(lenientValue(args[0])))
			return nil
		},
	}

	cmd.AddCommand(logCmd, hashCmd)
	return cmd
}

func (a *app) runDecisionLog(f decisionFlags) error {
	dir := pick(f.dir, nil, a.global.DecisionDir)
	if dir == "" {
		dir = "."
	}
	ctx := decision.Map{}
	if f.context != "" {
		v, err := decision.Parse([]byte(f.context))
		if err != nil {
			return fmt.Errorf("--context: %w", err)
		}
		m, ok := v.(decision.Map)
		if !ok {
			return errors.New("--context must be a JSON object")
		}
		ctx = m
	}

	dl, err := decision.Open(dir, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dl.Close(); cerr != nil {
			a.logger.Warn().Err(cerr).Msg("could not close decision log")
		}
	}()

	rec, err := dl.Log(decision.Decision{
		Model:      f.model,
		Input:      lenientValue(f.input),
		Output:     lenientValue(f.output),
		Confidence: f.confidence,
		RawInput:   f.rawInput,
		Context:    ctx,
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// lenientValue parses s as JSON and falls back to the literal string.
func lenientValue(s string) decision.Value {
	if v, err := decision.Parse([]byte(s)); err == nil {
		return v
	}
	return decision.String(s)
}
