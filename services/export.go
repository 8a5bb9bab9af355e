package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/validly/validator_server/logging"
	"go.uber.org/zap"
)

const (
	MimePDF  = "application/pdf"
	MimeHTML = "text/html"
)

// ExportReport renders the report document and converts it to PDF with
// a headless browser. When no browser can be launched it degrades to
// returning the rendered HTML itself.
func ExportReport(ctx context.Context, results []ToolResult, averageScore float64, businessIdea string) ([]byte, string, error) {
	html, err := RenderReportHTML(results, averageScore, businessIdea)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render report: %w", err)
	}

	pdf, err := htmlToPDF(ctx, html)
	if err != nil {
		logging.L().Warn("PDF conversion unavailable, exporting HTML", zap.Error(err))
		return []byte(html), MimeHTML, nil
	}
	return pdf, MimePDF, nil
}

func htmlToPDF(ctx context.Context, html string) ([]byte, error) {
	url, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, err
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	inch := func(v float64) *float64 { return &v }
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      inch(8.27), // A4
		PaperHeight:     inch(11.69),
		MarginTop:       inch(1),
		MarginBottom:    inch(1),
		MarginLeft:      inch(1),
		MarginRight:     inch(1),
	})
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

// RenderReportHTML produces the printable report document.
func RenderReportHTML(results []ToolResult, averageScore float64, businessIdea string) (string, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, reportData{
		Results:      results,
		AverageScore: averageScore,
		BusinessIdea: businessIdea,
		GeneratedOn:  time.Now().Format("January 2, 2006"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

type reportData struct {
	Results      []ToolResult
	AverageScore float64
	BusinessIdea string
	GeneratedOn  string
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"scoreColor": func(score int) string {
		if score >= 8 {
			return "#10b981"
		}
		if score >= 6 {
			return "#f59e0b"
		}
		return "#ef4444"
	},
	"statusColor": func(status string) string {
		switch status {
		case StatusStrong:
			return "#10b981"
		case StatusModerate:
			return "#f59e0b"
		case StatusNeedsWork:
			return "#ef4444"
		}
		return "#6b7280"
	},
	"upper": strings.ToUpper,
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Business Idea Validation Report</title>
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
    .header { text-align: center; margin-bottom: 40px; border-bottom: 3px solid #3b82f6; padding-bottom: 20px; }
    .title { font-size: 28px; font-weight: bold; color: #1e40af; margin-bottom: 10px; }
    .subtitle { font-size: 16px; color: #6b7280; }
    .business-idea { background-color: #f8fafc; border-left: 4px solid #3b82f6; padding: 20px; margin: 30px 0; border-radius: 0 8px 8px 0; }
    .business-idea h3 { color: #1e40af; margin-top: 0; }
    .overall-score { text-align: center; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 12px; margin: 30px 0; }
    .score-circle { display: inline-block; width: 80px; height: 80px; border-radius: 50%; background-color: rgba(255, 255, 255, 0.2); line-height: 80px; font-size: 32px; font-weight: bold; margin: 10px 0; }
    .validation-result { border: 1px solid #e5e7eb; border-radius: 8px; margin: 20px 0; overflow: hidden; }
    .result-header { background-color: #f9fafb; padding: 20px; border-bottom: 1px solid #e5e7eb; }
    .result-title { font-size: 18px; font-weight: 600; color: #1f2937; margin-bottom: 5px; }
    .result-meta { display: flex; align-items: center; gap: 15px; font-size: 14px; }
    .score-badge { font-weight: bold; font-size: 16px; }
    .status-badge { color: white; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: 500; }
    .result-content { padding: 20px; }
    .summary { font-style: italic; color: #6b7280; margin-bottom: 15px; }
    .details { color: #374151; white-space: pre-wrap; }
    .footer { text-align: center; margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 14px; }
    .page-break { page-break-before: always; }
  </style>
</head>
<body>
  <div class="header">
    <div class="title">Business Idea Validation Report</div>
    <div class="subtitle">Generated on {{.GeneratedOn}}</div>
  </div>

  <div class="business-idea">
    <h3>💡 Business Idea</h3>
    <p>{{.BusinessIdea}}</p>
  </div>

  <div class="overall-score">
    <h2 style="margin-top: 0;">Overall Validation Score</h2>
    <div class="score-circle">{{.AverageScore}}/10</div>
    <p style="margin-bottom: 0;">Based on {{len .Results}} validation tool{{if gt (len .Results) 1}}s{{end}}</p>
  </div>

  {{range $i, $r := .Results}}
  {{if gt $i 0}}<div class="page-break"></div>{{end}}
  <div class="validation-result">
    <div class="result-header">
      <div class="result-title">{{$r.Icon}} {{$r.Title}}</div>
      <div class="result-meta">
        <span class="score-badge" style="color: {{scoreColor $r.Score}};">Score: {{$r.Score}}/10</span>
        <span class="status-badge" style="background-color: {{statusColor $r.Status}};">{{upper $r.Status}}</span>
      </div>
    </div>
    <div class="result-content">
      <div class="summary">{{$r.Summary}}</div>
      <div class="details">{{$r.Details}}</div>
    </div>
  </div>
  {{end}}

  <div class="footer">
    <p>This report was generated using AI-powered validation tools.<br>
    Results should be used as guidance and supplemented with additional market research.</p>
  </div>
</body>
</html>
`))
