package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	recog "github.com/turtacn/PlasmidCatalog/internal/intelligence/recognition"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

type recognizeOptions struct {
	content bool
	object  bool
	path    string
}

// NewRecognizeCmd creates the recognize command.
func NewRecognizeCmd() *cobra.Command {
	opts := &recognizeOptions{}
	cmd := &cobra.Command{
		Use:   "recognize <file>...",
		Short: "Recognize catalog fields for one or more files",
		Long: "Recognize catalog fields from each file name.  With --content the file\n" +
			"is also read and its annotations and sequence are used.  With --object the\n" +
			"arguments are object storage keys.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecognize(cmd, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.content, "content", false, "read file bytes for content-augmented recognition")
	cmd.Flags().BoolVar(&opts.object, "object", false, "treat arguments as object storage keys")
	cmd.Flags().StringVar(&opts.path, "path", "", "directory path used as extra name context (default: the file's directory)")
	return cmd
}

func runRecognize(cmd *cobra.Command, opts *recognizeOptions, args []string) error {
	if opts.content && opts.object {
		return errors.InvalidParam("--content and --object are mutually exclusive")
	}
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	defer cancel()

	b, err := openBackend(cmd, cliCtx)
	if err != nil {
		return err
	}
	defer b.Close()

	var report *recognitionReport
	if opts.content || opts.object {
		report = recognizeEach(ctx, b, cliCtx, opts, args)
	} else {
		report, err = recognizeNames(ctx, b, cliCtx, opts, args)
		if err != nil {
			return err
		}
	}
	cliCtx.Logger.Debug("Recognition finished", logging.Int("files", len(args)), logging.Int("failed", report.failed()))

	if err := PrintResult(cmd, report); err != nil {
		return err
	}
	if n := report.failed(); n > 0 {
		return errors.New(errors.ErrCodeRecognitionFailed, fmt.Sprintf("%d of %d files failed", n, len(args)))
	}
	return nil
}

func requestFor(arg, pathFlag string) ptypes.RecognizeRequest {
	dir := pathFlag
	if dir == "" {
		if d := filepath.Dir(arg); d != "." {
			dir = d
		}
	}
	return ptypes.RecognizeRequest{Filename: filepath.Base(arg), Path: dir}
}

// recognizeNames sends name-only requests as batches no larger than the
// configured batch size.
func recognizeNames(ctx context.Context, b backend, cliCtx *CLIContext, opts *recognizeOptions, args []string) (*recognitionReport, error) {
	size := cliCtx.Config.Recognition.MaxBatchSize
	if size <= 0 {
		size = len(args)
	}
	report := &recognitionReport{Items: make([]recognitionItem, len(args))}
	for start := 0; start < len(args); start += size {
		end := start + size
		if end > len(args) {
			end = len(args)
		}
		req := &ptypes.BatchRecognizeRequest{Items: make([]ptypes.RecognizeRequest, 0, end-start)}
		for _, arg := range args[start:end] {
			req.Items = append(req.Items, requestFor(arg, opts.path))
		}
		resp, err := b.RecognizeBatch(ctx, req)
		if err != nil {
			return nil, err
		}
		for i, arg := range args[start:end] {
			item := recognitionItem{File: arg}
			if i < len(resp.Results) {
				item.Result = resp.Results[i]
			}
			report.Items[start+i] = item
		}
		for _, e := range resp.Errors {
			if idx := start + e.Index; idx >= start && idx < end {
				report.Items[idx].Error = e.Message
			}
		}
	}
	return report, nil
}

// recognizeEach reads and recognizes files concurrently, bounded by the
// configured batch concurrency.  Per-file failures are reported, not fatal.
func recognizeEach(ctx context.Context, b backend, cliCtx *CLIContext, opts *recognizeOptions, args []string) *recognitionReport {
	report := &recognitionReport{Items: make([]recognitionItem, len(args))}
	limit := cliCtx.Config.Recognition.BatchConcurrency
	if limit <= 0 {
		limit = 4
	}
	maxBytes := cliCtx.Config.Recognition.MaxContentBytes

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() error {
			item := recognitionItem{File: arg}
			req, err := contentRequest(arg, opts, maxBytes)
			if err == nil {
				item.Result, err = b.RecognizeContent(gctx, req)
			}
			if err != nil {
				item.Error = err.Error()
				cliCtx.Logger.Warn("Recognition failed", logging.Filename(arg), logging.Err(err))
			}
			report.Items[i] = item
			return nil
		})
	}
	_ = g.Wait()
	return report
}

func contentRequest(arg string, opts *recognizeOptions, maxBytes int64) (*ptypes.RecognizeContentRequest, error) {
	base := requestFor(arg, opts.path)
	if opts.object {
		return &ptypes.RecognizeContentRequest{Filename: base.Filename, Path: opts.path, ObjectKey: arg}, nil
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "cannot open file")
	}
	defer f.Close()
	r := io.Reader(f)
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "cannot read file")
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return nil, errors.New(errors.ErrCodeContentTooLarge, "file exceeds the content size limit").WithDetail(arg)
	}
	return &ptypes.RecognizeContentRequest{Filename: base.Filename, Path: base.Path, Content: content}, nil
}

type recognitionItem struct {
	File   string                      `json:"file"`
	Result *ptypes.RecognitionResponse `json:"result,omitempty"`
	Error  string                      `json:"error,omitempty"`
}

type recognitionReport struct {
	Items []recognitionItem `json:"items"`
}

func (r *recognitionReport) failed() int {
	n := 0
	for _, it := range r.Items {
		if it.Error != "" {
			n++
		}
	}
	return n
}

func (r *recognitionReport) TableHeaders() []string {
	headers := []string{"FILE"}
	for _, c := range recog.Categories() {
		headers = append(headers, strings.ToUpper(string(c)))
	}
	return headers
}

func (r *recognitionReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		row := []string{filepath.Base(it.File)}
		for _, c := range recog.Categories() {
			switch {
			case it.Error != "":
				row = append(row, "!")
			case it.Result != nil:
				row = append(row, strings.Join(it.Result.Fields[string(c)], ", "))
			default:
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteText prints one block per file with the non-empty fields.
func (r *recognitionReport) WriteText(w io.Writer) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for i, it := range r.Items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		bold.Fprintln(w, it.File)
		if it.Error != "" {
			fmt.Fprintf(w, "  %s %s\n", color.RedString("error:"), it.Error)
			continue
		}
		if it.Result == nil {
			continue
		}
		res := it.Result
		mode := res.Mode
		if res.FellBack {
			mode += " (fell back to name)"
		}
		faint.Fprintf(w, "  mode: %s, vocabulary v%d\n", mode, res.VocabularyVersion)
		corrected := make(map[string]bool, len(res.Corrected))
		for _, c := range res.Corrected {
			corrected[c] = true
		}
		for _, c := range recog.Categories() {
			vals := res.Fields[string(c)]
			if len(vals) == 0 {
				continue
			}
			line := strings.Join(vals, ", ")
			if corrected[string(c)] {
				line += " " + color.YellowString("(corrected)")
			}
			fmt.Fprintf(w, "  %-21s %s\n", c.Label()+":", color.CyanString(line))
		}
		if res.Description != "" {
			fmt.Fprintf(w, "  %s\n", res.Description)
		}
	}
}

//Personal.AI order the ending
