package uploads

// uploadResponse carries the stored blob's public URL and the coarse
// media type the client echoes back in chat payloads.
type uploadResponse struct {
	URL  string `json:"url" example:"http://localhost:8080/media/6f1d9c2e.png"`
	Type string `json:"type" example:"image" enum:"image,video"`
}
