package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/extraction"
	"github.com/inodb/vibe-serve/internal/liftover"
	"github.com/inodb/vibe-serve/internal/store"
)

// execute runs the root command with a fresh viper and an empty home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLiftFor(t *testing.T) {
	chain := &liftover.Chain{}
	tests := []struct {
		name              string
		models, target    datamodel.RefGenome
		chain             liftover.LiftOver
		wantNoop, wantErr bool
	}{
		{"models in target", datamodel.RefGenomeV38, datamodel.RefGenomeV38, nil, true, false},
		{"models in target with chain", datamodel.RefGenomeV37, datamodel.RefGenomeV37, chain, true, false},
		{"models need lift", datamodel.RefGenomeV37, datamodel.RefGenomeV38, chain, false, false},
		{"missing chain", datamodel.RefGenomeV37, datamodel.RefGenomeV38, nil, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lift, err := liftFor(tt.models, tt.target, tt.chain)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNoop {
				assert.Equal(t, liftover.Noop{}, lift)
			} else {
				assert.Same(t, chain, lift)
			}
		})
	}
}

func TestParseSources(t *testing.T) {
	path := writeFile(t, "ckb.tsv", "gene\tevent\n")

	sources, err := parseSources(map[string]string{"ckb": path, "civic": "-"})
	require.NoError(t, err)
	assert.Equal(t, map[datamodel.Knowledgebase]string{
		datamodel.KnowledgebaseCKB:   path,
		datamodel.KnowledgebaseCIViC: "-",
	}, sources)
	assert.Equal(t, []datamodel.Knowledgebase{datamodel.KnowledgebaseCIViC, datamodel.KnowledgebaseCKB}, sortedKnowledgebases(sources))

	_, err = parseSources(map[string]string{"nope": path})
	var uErr *usageError
	assert.ErrorAs(t, err, &uErr)

	_, err = parseSources(map[string]string{"ckb": filepath.Join(t.TempDir(), "missing.tsv")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMergeSources(t *testing.T) {
	merged := mergeSources(
		map[string]string{"ckb": "config-ckb.tsv", "civic": "civic.tsv"},
		map[string]string{"CKB": "flag-ckb.tsv"},
	)
	assert.Equal(t, map[string]string{"ckb": "flag-ckb.tsv", "civic": "civic.tsv"}, merged)
}

func TestEntryGenes(t *testing.T) {
	genes := entryGenes(map[datamodel.Knowledgebase][]extraction.Entry{
		datamodel.KnowledgebaseCKB: {
			{Gene: "BRAF", Event: "V600E"},
			{Gene: "", Event: "MSI HIGH"},
			{Gene: "BRAF", Event: "V600E + MEK1 K57N", Components: []extraction.Component{
				{Gene: "BRAF", Event: "V600E"}, {Gene: "MEK1", Event: "K57N"},
			}},
		},
		datamodel.KnowledgebaseCIViC: {{Gene: "EGFR", Event: "L858R"}},
	})
	assert.Equal(t, map[string]bool{"BRAF": true, "MEK1": true, "EGFR": true}, genes)
}

func TestReferenceFiles(t *testing.T) {
	v38 := referenceFiles(datamodel.RefGenomeV38, false)
	require.Len(t, v38, 4)
	assert.Equal(t, "gencode.v46.annotation.gtf.gz", fileName(v38[0].url))
	assert.Equal(t, "gencode.v46.pc_transcripts.fa.gz", fileName(v38[1].url))
	assert.Equal(t, canonicalFile, fileName(v38[2].url))
	assert.Equal(t, geneListFile, fileName(v38[3].url))
	assert.False(t, v38[0].optional)
	assert.True(t, v38[2].optional)

	v37 := referenceFiles(datamodel.RefGenomeV37, true)
	require.Len(t, v37, 4)
	assert.Equal(t, "gencode.v46lift37.annotation.gtf.gz", fileName(v37[0].url))
	assert.Equal(t, "hg19ToHg38.over.chain.gz", fileName(v37[3].url))
}

func TestWithDownloadedDefaults(t *testing.T) {
	dir := t.TempDir()
	asm := filepath.Join(dir, "grch37")
	require.NoError(t, os.MkdirAll(asm, 0o755))
	for _, name := range []string{
		"gencode.v46lift37.annotation.gtf.gz",
		"gencode.v46lift37.pc_transcripts.fa.gz",
		canonicalFile, geneListFile, "hg19ToHg38.over.chain.gz",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(asm, name), nil, 0o644))
	}

	opts := withDownloadedDefaults(extractOptions{}, dir, datamodel.RefGenomeV37)
	assert.Equal(t, filepath.Join(asm, "gencode.v46lift37.annotation.gtf.gz"), opts.GTF)
	assert.Equal(t, filepath.Join(asm, "gencode.v46lift37.pc_transcripts.fa.gz"), opts.FASTA)
	assert.Equal(t, filepath.Join(asm, canonicalFile), opts.Canonical)
	assert.Equal(t, filepath.Join(asm, geneListFile), opts.GeneList)
	assert.Equal(t, filepath.Join(asm, "hg19ToHg38.over.chain.gz"), opts.Chain)

	explicit := withDownloadedDefaults(extractOptions{TranscriptsTSV: "t.tsv", GeneList: "genes.txt"}, dir, datamodel.RefGenomeV37)
	assert.Empty(t, explicit.GTF)
	assert.Equal(t, "genes.txt", explicit.GeneList)

	none := withDownloadedDefaults(extractOptions{}, dir, datamodel.RefGenomeV38)
	assert.Equal(t, extractOptions{}, none)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "50.0 MB", formatSize(50*1024*1024))
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "--source", "civic", "BRAF", "p.Val600Glu")
	require.NoError(t, err)
	assert.Contains(t, out, "knowledgebase: CIVIC")
	assert.Contains(t, out, "event:         V600E")
	assert.Contains(t, out, "type:          HOTSPOT")

	_, err = execute(t, "classify", "--source", "nope", "BRAF", "V600E")
	var uErr *usageError
	assert.ErrorAs(t, err, &uErr)
}

const ckbEntries = "gene\tevent\ttreatment\tcancer_type\tdoid\tlevel\tdirection\n" +
	"ERBB2\tAmplification\tTrastuzumab\tBreast cancer\t1612\tA\tresponsive\n" +
	"BRAF\tV600E\tVemurafenib\tMelanoma\t1909\tA\tresponsive\n"

const civicEntries = "gene\tevent\n" +
	"ERBB2\tAMPLIFICATION\n"

func TestExtractCommand(t *testing.T) {
	ckb := writeFile(t, "ckb.tsv", ckbEntries)
	civic := writeFile(t, "civic.tsv", civicEntries)
	output := filepath.Join(t.TempDir(), "serve.duckdb")

	out, err := execute(t, "extract",
		"--source", "ckb="+ckb,
		"--source", "civic="+civic,
		"--workers", "2",
		"-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote V38 dataset to "+output)

	st, err := store.Open(output)
	require.NoError(t, err)
	defer st.Close()

	counts, err := st.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[store.TableKnownCopyNumbers])
	assert.Equal(t, int64(1), counts[store.TableActionableGenes])
	assert.Zero(t, counts[store.TableKnownHotspots])

	rg, err := st.RefGenome()
	require.NoError(t, err)
	assert.Equal(t, datamodel.RefGenomeV38, rg)
}

func TestExtractCommand_NoSources(t *testing.T) {
	_, err := execute(t, "extract", "-o", filepath.Join(t.TempDir(), "x.duckdb"))
	var uErr *usageError
	assert.ErrorAs(t, err, &uErr)
}

func TestValidateConfigValue(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"ref_genome", "GRCh37", false},
		{"models_build", "hg38", false},
		{"ref_genome", "hg18", true},
		{"sources.ckb", "ckb.tsv", false},
		{"sources.nope", "x.tsv", true},
		{"sources", "x.tsv", true},
		{"workers", "8", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := validateConfigValue(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigSetGet(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workers: 2\n"), 0o644))

	out, err := execute(t, "--config", cfg, "config", "set", "sources.ckb", "ckb.tsv")
	require.NoError(t, err)
	assert.Contains(t, out, "Set sources.ckb = ckb.tsv in "+cfg)

	out, err = execute(t, "--config", cfg, "config", "get", "sources.ckb")
	require.NoError(t, err)
	assert.Equal(t, "ckb.tsv\n", out)

	_, err = execute(t, "--config", cfg, "config", "set", "ref_genome", "hg18")
	var uErr *usageError
	assert.ErrorAs(t, err, &uErr)
}
