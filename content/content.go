// ABOUTME: Portfolio document model, loading and schema validation
// ABOUTME: Ships an embedded default; a YAML file on disk overrides it

// Package content loads the portfolio copy shown on the page.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"folio/locale"
	"folio/stack"
)

// ErrInvalidContent wraps every validation failure
var ErrInvalidContent = errors.New("invalid content")

//go:embed default.yaml
var defaultDocument []byte

// Document is the whole portfolio
type Document struct {
	Profile  Profile   `yaml:"profile"`
	About    About     `yaml:"about"`
	Projects []Project `yaml:"projects"`
	Contact  Contact   `yaml:"contact"`
}

// Profile is the hero banner copy
type Profile struct {
	Name    Scalar    `yaml:"name"`
	Role    Scalar    `yaml:"role"`
	Tagline Localized `yaml:"tagline"`
	Email   string    `yaml:"email"`
	GitHub  string    `yaml:"github"`
}

// About holds the introduction, skills and experience
type About struct {
	Intro      Localized    `yaml:"intro"`
	Skills     []SkillGroup `yaml:"skills"`
	Experience []Experience `yaml:"experience"`
}

// Empty reports whether the document has no about section at all
func (a About) Empty() bool {
	return a.Intro.Text == nil && len(a.Skills) == 0 && len(a.Experience) == 0
}

// SkillGroup is a category of technologies
type SkillGroup struct {
	Category Scalar   `yaml:"category"`
	Items    []string `yaml:"items"`
}

// Experience is one timeline entry
type Experience struct {
	Period       string `yaml:"period"`
	Title        Scalar `yaml:"title"`
	Organization Scalar `yaml:"organization"`
	Highlights   List   `yaml:"highlights"`
}

// Project is one showcase card
type Project struct {
	ID           string      `yaml:"id"`
	Period       string      `yaml:"period"`
	Type         Scalar      `yaml:"type"`
	Title        Scalar      `yaml:"title"`
	Features     List        `yaml:"features"`
	Description  Scalar      `yaml:"description"` // Markdown
	Technologies []string    `yaml:"technologies"`
	GitHub       string      `yaml:"github"`
	Live         string      `yaml:"live"`
	Theme        stack.Theme `yaml:"theme"`
}

// Contact is the closing section copy
type Contact struct {
	Heading Scalar    `yaml:"heading"`
	Body    Localized `yaml:"body"`
}

// defaultThemes are assigned to projects that do not set a theme
var defaultThemes = []stack.Theme{
	{Background: "#451a03", Glow: "#f59e0b", Border: "#fdba74"},
	{Background: "#172554", Glow: "#3b82f6", Border: "#93c5fd"},
	{Background: "#052e16", Glow: "#10b981", Border: "#6ee7b7"},
	{Background: "#422006", Glow: "#eab308", Border: "#fde047"},
	{Background: "#422006", Glow: "#facc15", Border: "#fde047"},
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Default returns the embedded document
func Default() (*Document, error) {
	return Parse(defaultDocument)
}

// Load reads a document from path, or the embedded default when path is empty
func Load(path string) (*Document, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes and validates a YAML document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	doc.applyDefaults()

	return &doc, nil
}

// Validate checks the document against the schema
func (d *Document) Validate() error {
	var errs []error

	check := func(field string, t Text) {
		if t == nil {
			errs = append(errs, fmt.Errorf("%s: missing", field))

			return
		}

		for _, lang := range t.missing() {
			errs = append(errs, fmt.Errorf("%s: missing %s text", field, lang))
		}
	}

	check("profile.name", d.Profile.Name)
	check("profile.role", d.Profile.Role)
	check("profile.tagline", d.Profile.Tagline.Text)
	// The about section is optional, but once present it needs an intro
	if !d.About.Empty() {
		check("about.intro", d.About.Intro.Text)
	}

	check("contact.heading", d.Contact.Heading)
	check("contact.body", d.Contact.Body.Text)

	if d.Profile.Email == "" {
		errs = append(errs, errors.New("profile.email: missing"))
	}

	for i, g := range d.About.Skills {
		check(fmt.Sprintf("about.skills[%d].category", i), g.Category)
	}

	for i, e := range d.About.Experience {
		check(fmt.Sprintf("about.experience[%d].title", i), e.Title)
		check(fmt.Sprintf("about.experience[%d].organization", i), e.Organization)
	}

	if len(d.Projects) == 0 {
		errs = append(errs, errors.New("projects: at least one project is required"))
	}

	seen := make(map[string]bool, len(d.Projects))

	for i, p := range d.Projects {
		field := fmt.Sprintf("projects[%d]", i)

		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("%s.id: missing", field))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("%s.id: duplicate %q", field, p.ID))
		}

		seen[p.ID] = true

		check(field+".title", p.Title)
		check(field+".features", p.Features)

		for name, color := range map[string]string{"bg": p.Theme.Background, "glow": p.Theme.Glow, "border": p.Theme.Border} {
			if color != "" && !hexColor.MatchString(color) {
				errs = append(errs, fmt.Errorf("%s.theme.%s: malformed color %q", field, name, color))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
	}

	return nil
}

func (d *Document) applyDefaults() {
	for i := range d.Projects {
		theme := &d.Projects[i].Theme
		fallback := defaultThemes[i%len(defaultThemes)]

		if theme.Background == "" {
			theme.Background = fallback.Background
		}

		if theme.Glow == "" {
			theme.Glow = fallback.Glow
		}

		if theme.Border == "" {
			theme.Border = fallback.Border
		}
	}
}

// StackEntries returns the showcase entries in document order
func (d *Document) StackEntries() []stack.Entry {
	entries := make([]stack.Entry, len(d.Projects))
	for i, p := range d.Projects {
		entries[i] = stack.Entry{ID: p.ID, Order: i, Theme: p.Theme}
	}

	return entries
}

// Project returns the project with id
func (d *Document) Project(id string) (Project, bool) {
	for _, p := range d.Projects {
		if p.ID == id {
			return p, true
		}
	}

	return Project{}, false
}

// Name returns the profile name in lang
func (d *Document) Name(lang locale.Lang) string {
	return d.Profile.Name.Get(lang)
}
