package model

// Profile is the public view of a user together with the projects they own.
type Profile struct {
	User     User      `json:"user"`
	Projects []Project `json:"projects"`
}
