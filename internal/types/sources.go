package types

// GitHubRepo is the internal shape of one repository returned by the GitHub starred endpoint.
type GitHubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	UpdatedAt   string `json:"updated_at"`
}

// LinkedInProfile is the internal shape of a LinkedIn profile after mapping the proxy API response.
// Collections are never nil after mapping.
type LinkedInProfile struct {
	Name            string                `json:"name"`
	Headline        string                `json:"headline"`
	Bio             string                `json:"bio"`
	ProfilePicture  string                `json:"profilePicture,omitempty"`
	Location        string                `json:"location,omitempty"`
	ConnectionCount int                   `json:"connectionCount"`
	Experience      []LinkedInExperience  `json:"experience"`
	Education       []LinkedInEducation   `json:"education"`
	Skills          []string              `json:"skills"`
	Certifications  []LinkedInCertificate `json:"certifications"`
	Honors          []LinkedInHonor       `json:"honors"`
	Publications    []LinkedInPublication `json:"publications"`
	Volunteers      []LinkedInVolunteer   `json:"volunteers"`
	Projects        []LinkedInProject     `json:"projects"`
}

// LinkedInExperience is a LinkedIn position.
type LinkedInExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// LinkedInEducation is a LinkedIn education entry.
type LinkedInEducation struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	Duration     string `json:"duration"`
	FieldOfStudy string `json:"fieldOfStudy"`
}

// LinkedInCertificate is a LinkedIn certification.
type LinkedInCertificate struct {
	Name      string `json:"name"`
	Authority string `json:"authority"`
	Issued    string `json:"issued"`
}

// LinkedInHonor is a LinkedIn honor or award.
type LinkedInHonor struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// LinkedInPublication is a LinkedIn publication.
type LinkedInPublication struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// LinkedInVolunteer is a LinkedIn volunteering entry.
type LinkedInVolunteer struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// LinkedInProject is a project listed on a LinkedIn profile.
type LinkedInProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ManualInput holds what the user typed into the creation form. Scalars are used
// only when no richer source supplies them.
type ManualInput struct {
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	Bio        string       `json:"bio"`
	Location   string       `json:"location,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []Skill      `json:"skills"`
	Projects   []Project    `json:"projects"`
}
