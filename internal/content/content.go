// Package content holds the portfolio's compiled-in records. A Portfolio is
// built once at startup and handed to whoever renders it; every accessor
// returns a copy, so holders cannot change what others see.
package content

type Identity struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	Location  string `json:"location"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Experience struct {
	Organization string   `json:"organization"`
	Role         string   `json:"role"`
	Period       string   `json:"period"`
	Highlight    bool     `json:"highlight"`
	Bullets      []string `json:"bullets"`
	Links        []Link   `json:"links"`
}

type Project struct {
	Title       string   `json:"title"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
	Links       []Link   `json:"links"`
}

type Education struct {
	Institution string `json:"institution"`
	Credential  string `json:"credential"`
	Period      string `json:"period"`
	Meta        string `json:"meta"`
}

type SkillGroup struct {
	Label  string   `json:"label"`
	Skills []string `json:"skills"`
}

// Intro is the hero paragraph with one emphasised phrase.
type Intro struct {
	Lead     string `json:"lead"`
	Emphasis string `json:"emphasis"`
	Tail     string `json:"tail"`
}

// Spotlight is the hero's call-out card.
type Spotlight struct {
	Kicker  string `json:"kicker"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Target  string `json:"target"`
}

// Data is the plain, serialisable form of a Portfolio.
type Data struct {
	Identity       Identity     `json:"identity"`
	Headline       string       `json:"headline"`
	Intro          Intro        `json:"intro"`
	Actions        []Link       `json:"actions"`
	Spotlight      Spotlight    `json:"spotlight"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Education      []Education  `json:"education"`
	Skills         []SkillGroup `json:"skills"`
	Certifications []string     `json:"certifications"`
}

// Portfolio is an immutable, validated set of records.
type Portfolio struct {
	data Data
}

// New validates d and freezes a private copy of it.
func New(d Data) (Portfolio, error) {
	if err := Validate(d); err != nil {
		return Portfolio{}, err
	}
	return Portfolio{data: d.clone()}, nil
}

// Default returns the compiled-in portfolio.
func Default() Portfolio {
	p, err := New(defaultData())
	if err != nil {
		panic("content: compiled-in portfolio is invalid: " + err.Error())
	}
	return p
}

func (p Portfolio) Data() Data               { return p.data.clone() }
func (p Portfolio) Identity() Identity       { return p.data.Identity }
func (p Portfolio) Headline() string         { return p.data.Headline }
func (p Portfolio) Intro() Intro             { return p.data.Intro }
func (p Portfolio) Spotlight() Spotlight     { return p.data.Spotlight }
func (p Portfolio) Actions() []Link          { return cloneLinks(p.data.Actions) }
func (p Portfolio) Experience() []Experience { return p.Data().Experience }
func (p Portfolio) Projects() []Project      { return p.Data().Projects }
func (p Portfolio) Education() []Education   { return append([]Education(nil), p.data.Education...) }
func (p Portfolio) Skills() []SkillGroup     { return p.Data().Skills }
func (p Portfolio) Certifications() []string { return append([]string(nil), p.data.Certifications...) }

func (d Data) clone() Data {
	out := d
	out.Actions = cloneLinks(d.Actions)

	out.Experience = make([]Experience, len(d.Experience))
	for i, e := range d.Experience {
		e.Bullets = append([]string(nil), e.Bullets...)
		e.Links = cloneLinks(e.Links)
		out.Experience[i] = e
	}

	out.Projects = make([]Project, len(d.Projects))
	for i, pr := range d.Projects {
		pr.Bullets = append([]string(nil), pr.Bullets...)
		pr.Links = cloneLinks(pr.Links)
		out.Projects[i] = pr
	}

	out.Education = append([]Education(nil), d.Education...)

	out.Skills = make([]SkillGroup, len(d.Skills))
	for i, g := range d.Skills {
		g.Skills = append([]string(nil), g.Skills...)
		out.Skills[i] = g
	}

	out.Certifications = append([]string(nil), d.Certifications...)
	return out
}

func cloneLinks(l []Link) []Link {
	return append([]Link(nil), l...)
}
