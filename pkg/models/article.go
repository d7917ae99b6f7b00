package models

const (
	NoTitle = "No title"
	NoBrief = "No brief"
	NoImage = "No image"
)

// Article represents one file in the articles directory.
type Article struct {
	Title    string `json:"title"`
	Brief    string `json:"brief"`
	Image    string `json:"image"` // data URI or NoImage
	Filename string `json:"filename"`
}
