package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-serve/internal/consolidation"
	"github.com/inodb/vibe-serve/internal/curation"
	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/entries"
	"github.com/inodb/vibe-serve/internal/extraction"
	"github.com/inodb/vibe-serve/internal/generoles"
	"github.com/inodb/vibe-serve/internal/liftover"
	"github.com/inodb/vibe-serve/internal/resolver"
	"github.com/inodb/vibe-serve/internal/store"
	"github.com/inodb/vibe-serve/internal/transcripts"
)

const (
	defaultOutput    = "vibe-serve.duckdb"
	defaultCacheSize = 10000
)

// extractOptions holds the resolved settings of one extract run.
type extractOptions struct {
	Sources        map[string]string // knowledgebase name -> entries file
	Curation       string
	GeneList       string
	GTF            string
	FASTA          string
	Canonical      string
	TranscriptsTSV string
	ModelsBuild    string
	Chain          string
	RefGenome      string
	Workers        int
	CacheSize      int
	Output         string
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract and merge knowledgebase entries into a DuckDB dataset",
		Long: `Read one entries file per knowledgebase, apply curation rules, classify and
resolve every entry, then merge all knowledgebases into one consolidated
dataset written to a DuckDB file.`,
		Example: `  vibe-serve extract --source ckb=ckb.tsv --source civic=civic.tsv.gz \
      --gtf gencode.v46.annotation.gtf.gz --fasta gencode.v46.pc_transcripts.fa.gz \
      --curation curation.yaml --gene-list cancerGeneList.txt -o serve.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := extractOptions{
				Sources:        viper.GetStringMapString("sources"),
				Curation:       viper.GetString("curation"),
				GeneList:       viper.GetString("gene_list"),
				GTF:            viper.GetString("gtf"),
				FASTA:          viper.GetString("fasta"),
				Canonical:      viper.GetString("canonical"),
				TranscriptsTSV: viper.GetString("transcripts"),
				ModelsBuild:    viper.GetString("models_build"),
				Chain:          viper.GetString("chain"),
				RefGenome:      viper.GetString("ref_genome"),
				Workers:        viper.GetInt("workers"),
				CacheSize:      viper.GetInt("cache_size"),
				Output:         viper.GetString("output"),
			}
			flagSources, err := cmd.Flags().GetStringToString("source")
			if err != nil {
				return err
			}
			opts.Sources = mergeSources(opts.Sources, flagSources)
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck
			return runExtract(cmd, opts, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringToString("source", nil, "Knowledgebase entries file as KB=path, KB one of "+knowledgebaseNames())
	flags.String("curation", "", "Curation rules YAML file")
	flags.String("gene-list", "", "Cancer gene list with gene roles (OncoKB cancerGeneList.txt)")
	flags.String("gtf", "", "GENCODE GTF annotation file")
	flags.String("fasta", "", "GENCODE protein-coding transcript sequences FASTA file")
	flags.String("canonical", "", "Canonical transcript overrides file")
	flags.String("transcripts", "", "Transcript table TSV, loaded through DuckDB instead of GTF/FASTA")
	flags.String("models-build", "", "Reference build of the gene models (default: --ref-genome)")
	flags.String("chain", "", "UCSC chain file lifting gene model positions to --ref-genome")
	flags.String("ref-genome", string(datamodel.RefGenomeV38), "Reference build of the output dataset")
	flags.Int("workers", 0, "Extraction workers per knowledgebase (0 = all CPUs)")
	flags.Int("cache-size", defaultCacheSize, "Protein resolution cache entries")
	flags.StringP("output", "o", defaultOutput, "Output DuckDB file")

	for key, flag := range map[string]string{
		"curation":     "curation",
		"gene_list":    "gene-list",
		"gtf":          "gtf",
		"fasta":        "fasta",
		"canonical":    "canonical",
		"transcripts":  "transcripts",
		"models_build": "models-build",
		"chain":        "chain",
		"ref_genome":   "ref-genome",
		"workers":      "workers",
		"cache_size":   "cache-size",
		"output":       "output",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
	return cmd
}

func runExtract(cmd *cobra.Command, opts extractOptions, logger *zap.Logger) error {
	if len(opts.Sources) == 0 {
		return usageErrorf("no knowledgebase sources given, use --source KB=path")
	}
	target, err := datamodel.ParseRefGenome(opts.RefGenome)
	if err != nil {
		return &usageError{err: err}
	}
	modelsBuild := target
	if opts.ModelsBuild != "" {
		if modelsBuild, err = datamodel.ParseRefGenome(opts.ModelsBuild); err != nil {
			return &usageError{err: err}
		}
	}
	opts = withDownloadedDefaults(opts, defaultDataDir(), modelsBuild)
	sources, err := parseSources(opts.Sources)
	if err != nil {
		return err
	}

	rules := curation.RuleSet{}
	if opts.Curation != "" {
		if rules, err = curation.LoadRules(opts.Curation); err != nil {
			return err
		}
	}

	curated := make(map[datamodel.Knowledgebase][]extraction.Entry, len(sources))
	for _, kb := range sortedKnowledgebases(sources) {
		es, err := entries.ReadAll(sources[kb])
		if err != nil {
			return fmt.Errorf("reading %s entries: %w", kb, err)
		}
		cur := curation.New(rules.For(kb), extraction.CurationKey, extraction.Rewrite)
		cur.SetLogger(logger.With(zap.String("knowledgebase", string(kb))))
		es, audit := cur.Curate(es, curation.NewAudit())
		if unused := cur.ReportUnused(audit); len(unused) > 0 {
			logger.Warn("unused curation rules", zap.String("knowledgebase", string(kb)), zap.Int("count", len(unused)))
		}
		curated[kb] = es
	}

	st, err := store.Open(opts.Output)
	if err != nil {
		return err
	}
	defer st.Close()

	cache, err := loadGeneModels(st, opts, entryGenes(curated), logger)
	if err != nil {
		return err
	}
	var chain liftover.LiftOver
	if opts.Chain != "" && modelsBuild != target {
		c, err := liftover.LoadChain(opts.Chain)
		if err != nil {
			return err
		}
		chain = c
	}
	var roles generoles.Roles
	if opts.GeneList != "" {
		if roles, err = generoles.Load(opts.GeneList); err != nil {
			return err
		}
		logger.Info("loaded gene roles", zap.Int("genes", len(roles)))
	}

	var proteins resolver.ProteinResolver = resolver.Dummy{}
	var ranges resolver.RangeResolver = resolver.Dummy{}
	if cache != nil {
		tr := resolver.NewTranscript(cache)
		cached, err := resolver.NewCached(tr, opts.CacheSize)
		if err != nil {
			return err
		}
		proteins, ranges = cached, tr
	} else {
		logger.Warn("no gene models given, hotspots and ranges will not be resolved")
		modelsBuild = target
	}

	lift, err := liftFor(modelsBuild, target, chain)
	if err != nil {
		return &usageError{err: err}
	}

	results := make([]datamodel.ExtractionResult, 0, len(curated))
	for _, kb := range sortedKnowledgebases(sources) {
		src, err := extraction.DefaultSource(kb)
		if err != nil {
			return err
		}
		src.Proteins = proteins
		src.Ranges = ranges
		src.ResolvedBuild = modelsBuild
		src.Target = target
		src.Lift = lift
		if roles != nil {
			src.GeneRoles = roles
		}

		x := extraction.New(src)
		x.SetLogger(logger)
		x.SetWorkers(opts.Workers)
		r, _, err := x.Extract(curated[kb])
		if err != nil {
			return fmt.Errorf("extracting %s: %w", kb, err)
		}
		results = append(results, r)
	}

	merged, err := consolidation.MergeResults(results...)
	if err != nil {
		return err
	}
	if err := st.WriteResult(merged); err != nil {
		return err
	}
	counts, err := st.Counts()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s dataset to %s\n", merged.RefGenome, opts.Output)
	for _, table := range store.Tables() {
		fmt.Fprintf(out, "  %-28s %d\n", table, counts[table])
	}
	return nil
}

// mergeSources overlays --source flags on configured sources. Names are
// matched case-insensitively.
func mergeSources(configured, flags map[string]string) map[string]string {
	merged := make(map[string]string, len(configured)+len(flags))
	for _, m := range []map[string]string{configured, flags} {
		for name, path := range m {
			merged[strings.ToLower(name)] = path
		}
	}
	return merged
}

// parseSources resolves knowledgebase names and checks that every entries
// file exists.
func parseSources(raw map[string]string) (map[datamodel.Knowledgebase]string, error) {
	sources := make(map[datamodel.Knowledgebase]string, len(raw))
	for name, path := range raw {
		kb, err := datamodel.ParseKnowledgebase(name)
		if err != nil {
			return nil, &usageError{err: err}
		}
		if path != "-" {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("%s entries: %w", kb, err)
			}
		}
		sources[kb] = path
	}
	return sources, nil
}

func sortedKnowledgebases[V any](m map[datamodel.Knowledgebase]V) []datamodel.Knowledgebase {
	kbs := make([]datamodel.Knowledgebase, 0, len(m))
	for kb := range m {
		kbs = append(kbs, kb)
	}
	slices.Sort(kbs)
	return kbs
}

// entryGenes collects every gene named by an entry or one of its
// components, so only those transcripts are loaded.
func entryGenes(curated map[datamodel.Knowledgebase][]extraction.Entry) map[string]bool {
	genes := make(map[string]bool)
	for _, es := range curated {
		for _, e := range es {
			if e.Gene != "" {
				genes[e.Gene] = true
			}
			for _, c := range e.Components {
				if c.Gene != "" {
					genes[c.Gene] = true
				}
			}
		}
	}
	return genes
}

// loadGeneModels loads transcripts from a TSV table or from GENCODE files.
// It returns nil when neither is configured.
func loadGeneModels(st *store.Store, opts extractOptions, genes map[string]bool, logger *zap.Logger) (*transcripts.Cache, error) {
	switch {
	case opts.TranscriptsTSV != "":
		n, err := st.LoadTranscripts(opts.TranscriptsTSV)
		if err != nil {
			return nil, err
		}
		cache, err := st.Transcripts()
		if err != nil {
			return nil, err
		}
		if opts.Canonical != "" {
			if err := applyCanonical(cache, opts.Canonical); err != nil {
				return nil, err
			}
		}
		logger.Info("loaded transcript table", zap.Int64("rows", n), zap.Int("genes", len(cache.Genes())))
		return cache, nil
	case opts.GTF != "":
		cache, err := transcripts.Load(transcripts.Files{
			GTF:       opts.GTF,
			FASTA:     opts.FASTA,
			Canonical: opts.Canonical,
		}, genes)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded gene models", zap.Int("transcripts", cache.Len()), zap.Int("genes", len(cache.Genes())))
		return cache, nil
	}
	return nil, nil
}

func applyCanonical(cache *transcripts.Cache, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open canonical overrides: %w", err)
	}
	defer f.Close()
	overrides, err := transcripts.ParseCanonicalOverrides(f)
	if err != nil {
		return err
	}
	cache.ApplyCanonical(overrides)
	return nil
}

// liftFor picks the liftover from the gene model build to target. Every
// position comes from the gene models, whatever build a knowledgebase uses.
func liftFor(modelsBuild, target datamodel.RefGenome, chain liftover.LiftOver) (liftover.LiftOver, error) {
	switch {
	case modelsBuild == target:
		return liftover.Noop{}, nil
	case chain == nil:
		return nil, fmt.Errorf("gene models are %s, a --chain to %s is required", modelsBuild, target)
	default:
		return chain, nil
	}
}

// knowledgebaseNames lists accepted --source names for help output.
func knowledgebaseNames() string {
	kbs := datamodel.Knowledgebases()
	names := make([]string, len(kbs))
	for i, kb := range kbs {
		names[i] = strings.ToLower(string(kb))
	}
	return strings.Join(names, ", ")
}
