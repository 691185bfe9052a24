package dto

import "io"

// FileInput - файл из multipart-запроса, отвязанный от gin
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UploadedFile struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Type     string `json:"type"` // image | video
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Size     int64  `json:"size"`
}

type UploadResponse struct {
	Success bool            `json:"success"`
	Files   []*UploadedFile `json:"files"`
}
