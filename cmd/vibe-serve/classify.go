package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/extraction"
)

func newClassifyCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "classify <gene> <event>",
		Short: "Show how a knowledgebase event is classified",
		Example: `  vibe-serve classify BRAF V600E
  vibe-serve classify --source civic BRAF p.Val600Glu
  vibe-serve classify EGFR "Exon 19 deletion"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, source, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&source, "source", string(datamodel.KnowledgebaseCKB), "Knowledgebase whose preprocessing and matchers apply")
	return cmd
}

func runClassify(cmd *cobra.Command, source, gene, event string) error {
	kb, err := datamodel.ParseKnowledgebase(source)
	if err != nil {
		return &usageError{err: err}
	}
	src, err := extraction.DefaultSource(kb)
	if err != nil {
		return err
	}
	preprocessed := event
	if src.Preprocess != nil {
		preprocessed = src.Preprocess(event)
	}

	c := extraction.New(src).Classifier()
	matches := c.Matches(gene, preprocessed)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = string(m)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "knowledgebase: %s\n", kb)
	fmt.Fprintf(out, "event:         %s\n", preprocessed)
	fmt.Fprintf(out, "type:          %s\n", c.Classify(gene, preprocessed))
	fmt.Fprintf(out, "matches:       %s\n", strings.Join(names, ", "))
	return nil
}
