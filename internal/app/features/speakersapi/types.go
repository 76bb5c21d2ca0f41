package speakersapi

// speakerInput is the request body for create and update.
type speakerInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Affiliation string `json:"affiliation" validate:"max=300"`
	Country     string `json:"country" validate:"max=100"`
	Bio         string `json:"bio" validate:"max=5000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	Category    string `json:"category" validate:"required"`
	Visible     *bool  `json:"visible"`
	Order       int    `json:"order" validate:"min=0"`
}

// reorderInput is the request body for PUT /reorder: speaker IDs in
// their new display order.
type reorderInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}
