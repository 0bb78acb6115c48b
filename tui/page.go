// ABOUTME: Page layout: turns the content document into sections of rows
// ABOUTME: Each section is a list of revealable blocks with a measured top and height

package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folio/content"
	"folio/locale"
	"folio/stack"
)

// Section identifiers in page order
const (
	sectionHero     = "hero"
	sectionAbout    = "about"
	sectionProjects = "projects"
	sectionContact  = "contact"
)

var sectionIDs = []string{sectionHero, sectionAbout, sectionProjects, sectionContact}

var sectionNavKeys = []string{locale.KeyNavHero, locale.KeyNavAbout, locale.KeyNavProjects, locale.KeyNavContact}

// pageSection is one laid-out section. Blocks are the children revealed
// one by one; hidden blocks keep their rows so the layout never shifts.
type pageSection struct {
	id     string
	padTop int
	blocks [][]string
	top    int
	height int
}

// children is the number of revealable blocks
func (s *pageSection) children() int {
	return len(s.blocks)
}

// rows is the number of rows the blocks occupy
func (s *pageSection) rows() int {
	n := 0
	for _, b := range s.blocks {
		n += len(b)
	}

	return n
}

// page is the whole document laid out at one width and language
type page struct {
	sections []pageSection
	total    int
	width    int
	column   int
}

// section returns the section with id
func (p *page) section(id string) *pageSection {
	for i := range p.sections {
		if p.sections[i].id == id {
			return &p.sections[i]
		}
	}

	return nil
}

// buildPage lays out every section the document has. inset is the number
// of rows covered by fixed chrome above the page.
func buildPage(doc *content.Document, lang locale.Lang, width, viewportHeight, inset int, engine *stack.Engine) *page {
	column := min(max(width-4, minColumn), maxColumn)
	margin := strings.Repeat(" ", max((width-column)/2, 0))

	p := &page{width: width, column: column}

	hero := heroSection(doc, lang, column)
	hero.height = max(hero.rows()+2, viewportHeight)
	hero.padTop = (hero.height - hero.rows()) / 2

	sections := []pageSection{hero}

	if !doc.About.Empty() {
		about := aboutSection(doc, lang, column)
		about.padTop = 1
		about.height = about.rows() + 2
		sections = append(sections, about)
	}

	projects := projectsSection(doc, lang, column, engine)
	projects.height = int(math.Ceil(engine.Height()))

	contactSec := contactSection(doc, lang, column)
	contactSec.padTop = 1
	contactSec.height = max(contactSec.rows()+2, viewportHeight-inset)

	sections = append(sections, projects, contactSec)

	top := 0
	for _, s := range sections {
		for i := range s.blocks {
			s.blocks[i] = indent(s.blocks[i], margin)
		}

		s.top = top
		top += s.height
		p.sections = append(p.sections, s)
	}

	p.total = top

	return p
}

func heroSection(doc *content.Document, lang locale.Lang, column int) pageSection {
	tagline := wrapAll(doc.Profile.Tagline.Lines(lang), column)

	links := mutedStyle.Render(doc.Profile.Email)
	if doc.Profile.GitHub != "" {
		links += mutedStyle.Render("  ·  " + doc.Profile.GitHub)
	}

	return pageSection{
		id: sectionHero,
		blocks: [][]string{
			{titleStyle.Render(strings.ToUpper(doc.Profile.Name.Get(lang))), ""},
			{accentStyle.Render(doc.Profile.Role.Get(lang)), ""},
			append(tagline, ""),
			{links, ""},
			{helpStyle.Render(locale.T(lang, locale.KeyScrollHint))},
		},
	}
}

func aboutSection(doc *content.Document, lang locale.Lang, column int) pageSection {
	blocks := [][]string{
		{headingStyle.Render(locale.T(lang, locale.KeyNavAbout)), ""},
	}

	intro := content.RenderMarkdown(strings.Join(doc.About.Intro.Lines(lang), "\n"), column)
	blocks = append(blocks, append(intro, ""))

	for _, g := range doc.About.Skills {
		block := []string{accentStyle.Render(g.Category.Get(lang))}
		block = append(block, indent(content.Wrap(strings.Join(g.Items, " · "), column-2), "  ")...)
		blocks = append(blocks, append(block, ""))
	}

	for _, e := range doc.About.Experience {
		head := mutedStyle.Render(e.Period) + "  " + lipgloss.NewStyle().Bold(true).Render(e.Title.Get(lang))
		block := []string{head, mutedStyle.Render("      " + e.Organization.Get(lang))}

		for _, h := range e.Highlights.Get(lang) {
			for i, line := range content.Wrap(h, column-4) {
				if i == 0 {
					block = append(block, "  - "+line)
				} else {
					block = append(block, "    "+line)
				}
			}
		}

		blocks = append(blocks, append(block, ""))
	}

	return pageSection{id: sectionAbout, blocks: blocks}
}

// projectsSection holds the floating title block followed by one block per card
func projectsSection(doc *content.Document, lang locale.Lang, column int, engine *stack.Engine) pageSection {
	metrics := engine.Metrics()

	title := fitRows([]string{"", headingStyle.Render(locale.T(lang, locale.KeyNavProjects))}, int(metrics.TitleHeight))
	blocks := [][]string{title}

	for _, entry := range engine.Entries() {
		project, ok := doc.Project(entry.ID)
		if !ok {
			continue
		}

		blocks = append(blocks, renderCard(project, entry.Theme, lang, column, int(metrics.CardHeight)))
	}

	return pageSection{id: sectionProjects, blocks: blocks}
}

func contactSection(doc *content.Document, lang locale.Lang, column int) pageSection {
	body := content.RenderMarkdown(strings.Join(doc.Contact.Body.Lines(lang), "\n"), column)

	reach := []string{accentStyle.Render("✉ " + doc.Profile.Email)}
	if doc.Profile.GitHub != "" {
		reach = append(reach, accentStyle.Render("⌂ "+doc.Profile.GitHub))
	}

	return pageSection{
		id: sectionContact,
		blocks: [][]string{
			{headingStyle.Render(doc.Contact.Heading.Get(lang)), ""},
			append(body, ""),
			append(reach, ""),
			{fabStyle.Render(locale.T(lang, locale.KeyContactButton))},
		},
	}
}

// ========== Helpers ==========

func indent(lines []string, prefix string) []string {
	if prefix == "" {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = prefix + line
	}

	return out
}

func wrapAll(lines []string, width int) []string {
	var out []string
	for _, line := range lines {
		out = append(out, content.Wrap(line, width)...)
	}

	return out
}

// fitRows pads or cuts lines to exactly n rows
func fitRows(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}

	out := make([]string, n)
	copy(out, lines)

	return out
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
