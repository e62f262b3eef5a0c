package item

// Summary is an item without its content fields. Used by list.
type Summary struct {
	ID        string   `json:"id"`
	Kind      Kind     `json:"kind"`
	Title     string   `json:"title,omitempty"`
	SourceURL string   `json:"source_url,omitempty"`
	Filename  string   `json:"filename,omitempty"`
	Tags      []string `json:"tags"`
	Chars     int      `json:"chars"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

// ToSummary strips the content fields. Title falls back to the first line
// of the raw content.
func (it *Item) ToSummary() Summary {
	title := CollapseWhitespace(it.ExtractedTitle)
	if title == "" {
		title = FirstLine(it.RawContent, SummaryTitleChars)
	}
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return Summary{
		ID:        it.ID,
		Kind:      it.Kind,
		Title:     title,
		SourceURL: it.SourceURL,
		Filename:  it.Filename,
		Tags:      tags,
		Chars:     CountChars(it.RawContent),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
