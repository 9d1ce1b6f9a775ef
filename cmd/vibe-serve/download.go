package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// GENCODE FTP URLs
const (
	gencodeBaseURL = "https://ftp.ebi.ac.uk/pub/databases/gencode/Gencode_human/release_46"
	gencodeVersion = "v46"
)

// Genome Nexus canonical transcript file URLs.
const (
	canonicalURLV38  = "https://raw.githubusercontent.com/genome-nexus/genome-nexus-importer/master/data/grch38_ensembl95/export/ensembl_biomart_canonical_transcripts_per_hgnc.txt"
	canonicalURLV37  = "https://raw.githubusercontent.com/genome-nexus/genome-nexus-importer/master/data/grch37_ensembl92/export/ensembl_biomart_canonical_transcripts_per_hgnc.txt"
	canonicalFile    = "ensembl_biomart_canonical_transcripts_per_hgnc.txt"
	geneListURL      = "https://www.oncokb.org/api/v1/utils/cancerGeneList.txt"
	geneListFile     = "cancerGeneList.txt"
	chainURLV37ToV38 = "https://hgdownload.soe.ucsc.edu/goldenPath/hg19/liftOver/hg19ToHg38.over.chain.gz"
)

// referenceFile is one downloadable input. Optional files only warn on
// failure.
type referenceFile struct {
	label    string
	url      string
	optional bool
}

// referenceFiles lists the downloads for a gene model build.
func referenceFiles(build datamodel.RefGenome, gtfOnly bool) []referenceFile {
	var gtfURL, fastaURL, canonicalURL string
	switch build {
	case datamodel.RefGenomeV37:
		gtfURL = fmt.Sprintf("%s/GRCh37_mapping/gencode.%slift37.annotation.gtf.gz", gencodeBaseURL, gencodeVersion)
		fastaURL = fmt.Sprintf("%s/GRCh37_mapping/gencode.%slift37.pc_transcripts.fa.gz", gencodeBaseURL, gencodeVersion)
		canonicalURL = canonicalURLV37
	default:
		gtfURL = fmt.Sprintf("%s/gencode.%s.annotation.gtf.gz", gencodeBaseURL, gencodeVersion)
		fastaURL = fmt.Sprintf("%s/gencode.%s.pc_transcripts.fa.gz", gencodeBaseURL, gencodeVersion)
		canonicalURL = canonicalURLV38
	}

	files := []referenceFile{{label: "GTF", url: gtfURL}}
	if !gtfOnly {
		files = append(files, referenceFile{label: "FASTA", url: fastaURL})
	}
	files = append(files,
		referenceFile{label: "canonical transcript overrides", url: canonicalURL, optional: true},
		referenceFile{label: "cancer gene list", url: geneListURL, optional: true},
	)
	if build == datamodel.RefGenomeV37 {
		files = append(files, referenceFile{label: "GRCh37 to GRCh38 chain", url: chainURLV37ToV38, optional: true})
	}
	return files
}

// fileName returns the local name of a downloaded URL.
func fileName(url string) string {
	switch url {
	case canonicalURLV37, canonicalURLV38:
		return canonicalFile
	}
	return filepath.Base(url)
}

func assemblyDir(build datamodel.RefGenome) string {
	if build == datamodel.RefGenomeV37 {
		return "grch37"
	}
	return "grch38"
}

func newDownloadCmd() *cobra.Command {
	var (
		build     string
		outputDir string
		gtfOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download gene models, gene roles and chain files",
		Long: `Download GENCODE gene models, Genome Nexus canonical transcript overrides,
the OncoKB cancer gene list and, for GRCh37, the UCSC liftover chain to
GRCh38. Files go to ~/.vibe-serve/<assembly>/ and are picked up by extract
when no explicit paths are given.`,
		Example: `  vibe-serve download                     # GRCh38 (default)
  vibe-serve download --models-build GRCh37
  vibe-serve download --output /data/vibe-serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rg, err := datamodel.ParseRefGenome(build)
			if err != nil {
				return &usageError{err: err}
			}
			if outputDir == "" {
				if outputDir = defaultDataDir(); outputDir == "" {
					return fmt.Errorf("cannot determine home directory")
				}
			}
			return runDownload(cmd.Context(), cmd.OutOrStdout(), rg, filepath.Join(outputDir, assemblyDir(rg)), gtfOnly)
		},
	}
	cmd.Flags().StringVar(&build, "models-build", "GRCh38", "Genome assembly: GRCh37 or GRCh38")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default: ~/"+configName+"/)")
	cmd.Flags().BoolVar(&gtfOnly, "gtf-only", false, "Only download GTF annotations (skip FASTA sequences)")
	return cmd
}

func runDownload(ctx context.Context, out io.Writer, build datamodel.RefGenome, destDir string, gtfOnly bool) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", destDir, err)
	}

	fmt.Fprintf(out, "Downloading GENCODE %s reference files for %s...\n", gencodeVersion, build)
	fmt.Fprintf(out, "Destination: %s\n\n", destDir)

	for _, f := range referenceFiles(build, gtfOnly) {
		err := downloadFile(ctx, out, f.url, filepath.Join(destDir, fileName(f.url)))
		if err == nil {
			continue
		}
		if !f.optional {
			return fmt.Errorf("downloading %s: %w", f.label, err)
		}
		fmt.Fprintf(out, "  Warning: could not download %s: %v\n", f.label, err)
	}

	fmt.Fprintf(out, "\nDownload complete!\n")
	fmt.Fprintf(out, "To build a dataset, run:\n")
	fmt.Fprintf(out, "  vibe-serve extract --source ckb=ckb_entries.tsv --models-build %s\n", build)
	return nil
}

// downloadFile downloads a file from URL to the destination path with progress.
func downloadFile(ctx context.Context, out io.Writer, url, destPath string) error {
	if info, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(out, "  %s already exists (%s), skipping\n", filepath.Base(destPath), formatSize(info.Size()))
		return nil
	}

	fmt.Fprintf(out, "  Downloading %s...\n", filepath.Base(destPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	pw := &progressWriter{out: out, total: resp.ContentLength, lastPrint: time.Now()}
	_, err = io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	fmt.Fprintf(out, "    Done: %s\n", formatSize(pw.downloaded))
	return nil
}

// progressWriter tracks download progress.
type progressWriter struct {
	out        io.Writer
	total      int64
	downloaded int64
	lastPrint  time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.downloaded += int64(n)

	if time.Since(pw.lastPrint) > time.Second {
		if pw.total > 0 {
			pct := float64(pw.downloaded) / float64(pw.total) * 100
			fmt.Fprintf(pw.out, "\r    Progress: %s / %s (%.1f%%)  ",
				formatSize(pw.downloaded), formatSize(pw.total), pct)
		} else {
			fmt.Fprintf(pw.out, "\r    Progress: %s  ", formatSize(pw.downloaded))
		}
		pw.lastPrint = time.Now()
	}
	return n, nil
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// downloadedFiles holds reference files found under the data directory.
type downloadedFiles struct {
	GTF, FASTA, Canonical, GeneList, Chain string
}

// findDownloadedFiles looks for files a previous download placed in dir.
// Missing files are left empty.
func findDownloadedFiles(dir string, build datamodel.RefGenome) downloadedFiles {
	var found downloadedFiles
	if dir == "" {
		return found
	}
	dir = filepath.Join(dir, assemblyDir(build))

	gtfPattern, fastaPattern := "gencode.v*.annotation.gtf.gz", "gencode.v*.pc_transcripts.fa.gz"
	if build == datamodel.RefGenomeV37 {
		gtfPattern, fastaPattern = "gencode.v*lift37.annotation.gtf.gz", "gencode.v*lift37.pc_transcripts.fa.gz"
	}
	glob := func(pattern string) string {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil || len(matches) == 0 {
			return ""
		}
		return matches[0]
	}
	exists := func(name string) string {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			return ""
		}
		return p
	}

	found.GTF = glob(gtfPattern)
	found.FASTA = glob(fastaPattern)
	found.Canonical = exists(canonicalFile)
	found.GeneList = exists(geneListFile)
	if build == datamodel.RefGenomeV37 {
		found.Chain = exists(fileName(chainURLV37ToV38))
	}
	return found
}

// withDownloadedDefaults fills unset gene model, gene list and chain paths
// from the data directory.
func withDownloadedDefaults(opts extractOptions, dir string, build datamodel.RefGenome) extractOptions {
	found := findDownloadedFiles(dir, build)
	if opts.GTF == "" && opts.TranscriptsTSV == "" && found.GTF != "" {
		opts.GTF = found.GTF
		if opts.FASTA == "" {
			opts.FASTA = found.FASTA
		}
		if opts.Canonical == "" {
			opts.Canonical = found.Canonical
		}
	}
	if opts.GeneList == "" {
		opts.GeneList = found.GeneList
	}
	if opts.Chain == "" {
		opts.Chain = found.Chain
	}
	return opts
}
