package domain

// HostedImage pairs the local staging copy of an image with its durable public URL
type HostedImage struct {
	SourceURL  string `json:"source_url"`
	LocalPath  string `json:"local_path"`  // Removed once URL is confirmed reachable
	RemotePath string `json:"remote_path"` // Path inside the storage account
	URL        string `json:"url"`
}
