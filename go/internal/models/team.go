package models

// Team is a franchise that can be drawn during a session.
type Team struct {
	Abbr string `json:"abbr" yaml:"abbr"`
	Name string `json:"name" yaml:"name"`
}
