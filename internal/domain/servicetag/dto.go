package servicetag

// ClassifyRequest is the body of POST /service-tags/classify
type ClassifyRequest struct {
	Text    string `json:"text" validate:"required,max=200"`
	Service string `json:"service,omitempty" validate:"omitempty,max=200"`
}

// ClassifyResponse carries the tags and, when a service name was given, whether a
// package named Text covers it
type ClassifyResponse struct {
	Tags        TagSet  `json:"tags"`
	ServiceTags *TagSet `json:"service_tags,omitempty"`
	Matches     *bool   `json:"matches,omitempty"`
}
