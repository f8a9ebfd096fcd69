package extract

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/andybalholm/cascadia"
	"golang.org/x/text/cases"

	"github.com/nao1215/facultyscan/internal/dom"
	"github.com/nao1215/facultyscan/internal/model"
)

// DefaultBlockSelector matches one detail block per faculty member.
const DefaultBlockSelector = "div.clearfix"

// Structural tags inside a detail block.
const (
	nameTag    = "h2"
	detailsTag = "p"
	labelTag   = "strong"
	anchorTag  = "a"
)

// field identifies a FacultyRecord slot a label can fill.
type field int

const (
	fieldTitle field = iota
	fieldOffice
	fieldPhone
	fieldEmail
	fieldWebsite
)

// labelRule binds a label keyword to the field it fills.
type labelRule struct {
	keyword string
	field   field
}

// labelRules is evaluated top to bottom; the first keyword contained in
// the folded label wins. "Office Hours" therefore lands in office and
// "Web Page" in website.
var labelRules = []labelRule{
	{keyword: "title", field: fieldTitle},
	{keyword: "office", field: fieldOffice},
	{keyword: "phone", field: fieldPhone},
	{keyword: "email", field: fieldEmail},
	{keyword: "web", field: fieldWebsite},
}

// Extractor scans detail blocks of a parsed page and builds records.
// An Extractor is safe for concurrent use.
type Extractor struct {
	// blockSelector locates detail blocks.
	blockSelector cascadia.Selector

	// logger receives dropped-block and unrecognized-label events.
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*extractorConfig)

type extractorConfig struct {
	blockSelector string
	logger        *slog.Logger
}

// WithBlockSelector sets the CSS selector identifying detail blocks.
func WithBlockSelector(selector string) Option {
	return func(c *extractorConfig) {
		c.blockSelector = selector
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *extractorConfig) {
		c.logger = logger
	}
}

// New creates an Extractor. It fails only when the block selector is not
// valid CSS.
func New(opts ...Option) (*Extractor, error) {
	cfg := extractorConfig{
		blockSelector: DefaultBlockSelector,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	sel, err := dom.CompileSelector(cfg.blockSelector)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		blockSelector: sel,
		logger:        cfg.logger,
	}, nil
}

// Extract returns one record per detail block that carries a name.
// Malformed blocks are logged and skipped; extraction never fails.
func (e *Extractor) Extract(doc *dom.Document) []model.FacultyRecord {
	blocks := doc.SelectCompiled(e.blockSelector)
	e.logger.Info("found faculty entries", "blocks", len(blocks))

	// cases.Caser is stateful, so each call gets its own.
	fold := cases.Fold()

	records := make([]model.FacultyRecord, 0, len(blocks))
	for i, block := range blocks {
		record, ok := e.extractBlock(block, fold)
		if !ok {
			e.logger.Warn("skipping entry without name", "block", i)
			continue
		}
		records = append(records, record)
	}

	e.logger.Info("extracted faculty entries", "count", len(records))
	return records
}

// extractBlock builds a record from a single detail block.
func (e *Extractor) extractBlock(block *dom.Element, fold cases.Caser) (model.FacultyRecord, bool) {
	var record model.FacultyRecord

	if heading := block.FindFirstTag(nameTag); heading != nil {
		record.Name = strings.TrimSpace(heading.Text())
	}
	if record.Name == "" {
		return record, false
	}

	if details := block.FindFirstTag(detailsTag); details != nil {
		for _, child := range details.Children {
			label, ok := child.(*dom.Element)
			if !ok || label.Tag != labelTag {
				continue
			}
			e.applyLabel(&record, label, fold)
		}
	}

	for _, name := range record.MissingFields() {
		if name == "title" || name == "email" || name == "website" {
			e.logger.Warn("missing field", "field", name, "name", record.Name)
		}
	}

	record.ApplyFallbacks()
	e.logger.Debug("extracted entry",
		"name", record.Name,
		"title", record.Title,
		"office", record.Office,
		"phone", record.Phone,
		"email", record.Email,
		"website", record.Website,
	)

	return record, true
}

// applyLabel fills the field named by label. A repeated label overwrites
// the earlier value, including with an empty one.
func (e *Extractor) applyLabel(record *model.FacultyRecord, label *dom.Element, fold cases.Caser) {
	text := strings.TrimFunc(label.Text(), func(r rune) bool {
		return r == ':' || unicode.IsSpace(r)
	})

	f, ok := classify(fold.String(text))
	if !ok {
		e.logger.Debug("unrecognized label", "label", text, "name", record.Name)
		return
	}

	switch f {
	case fieldTitle:
		record.Title, _ = CleanValue(siblingText(label))
	case fieldOffice:
		record.Office, _ = CleanValue(siblingText(label))
	case fieldPhone:
		record.Phone, _ = CleanPhone(siblingText(label))
	case fieldEmail:
		record.Email = ""
		if a := dom.FindNext(label, anchorWithHref("mailto:")); a != nil {
			href, _ := a.Attr("href")
			record.Email, _ = CleanValue(strings.ReplaceAll(href, "mailto:", ""))
		}
	case fieldWebsite:
		record.Website = ""
		if a := dom.FindNext(label, anchorWithHref("http")); a != nil {
			href, _ := a.Attr("href")
			record.Website, _ = CleanValue(href)
		}
	}
}

// classify maps a folded label to its field.
func classify(folded string) (field, bool) {
	for _, rule := range labelRules {
		if strings.Contains(folded, rule.keyword) {
			return rule.field, true
		}
	}
	return 0, false
}

// siblingText returns the text node right after label, or "" when the
// next sibling is missing or an element.
func siblingText(label *dom.Element) string {
	if txt, ok := dom.NextSibling(label).(*dom.Text); ok {
		return txt.Content
	}
	return ""
}

// anchorWithHref matches anchors whose href contains substr.
func anchorWithHref(substr string) func(*dom.Element) bool {
	return func(el *dom.Element) bool {
		if el.Tag != anchorTag {
			return false
		}
		href, ok := el.Attr("href")
		return ok && strings.Contains(href, substr)
	}
}
