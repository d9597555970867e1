package types

// EntityID returns the experience id.
func (e Experience) EntityID() string { return e.ID }

// WithEntityID returns a copy carrying id.
func (e Experience) WithEntityID(id string) Experience { e.ID = id; return e }

// EntityID returns the education id.
func (e Education) EntityID() string { return e.ID }

// WithEntityID returns a copy carrying id.
func (e Education) WithEntityID(id string) Education { e.ID = id; return e }

// EntityID returns the skill id.
func (s Skill) EntityID() string { return s.ID }

// WithEntityID returns a copy carrying id.
func (s Skill) WithEntityID(id string) Skill { s.ID = id; return s }

// EntityID returns the project id.
func (p Project) EntityID() string { return p.ID }

// WithEntityID returns a copy carrying id.
func (p Project) WithEntityID(id string) Project { p.ID = id; return p }
