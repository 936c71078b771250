package controller

// List item type shared by the listing views.
type fileItem struct {
	path   string
	detail string
}

func (f fileItem) FilterValue() string {
	return f.path
}

// listingMsg loads a titled list into a listingModel.
type listingMsg struct {
	title   string
	summary string
	items   []fileItem
}
