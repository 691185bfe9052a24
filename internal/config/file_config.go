package config

import "strings"

// UploadConfig - ограничения на загрузку медиа
type UploadConfig struct {
	MaxSize           int64    `yaml:"max_size"`  // байт на файл
	MaxFiles          int      `yaml:"max_files"` // файлов на запрос
	AllowedPrefixes   []string `yaml:"allowed_prefixes"`
	ImageQuality      int      `yaml:"image_quality"`       // JPEG 1-100
	MaxImageDimension int      `yaml:"max_image_dimension"` // px, по большей стороне
}

func (u *UploadConfig) applyDefaults() {
	if u.MaxSize == 0 {
		u.MaxSize = 10 * 1024 * 1024
	}
	if u.MaxFiles == 0 {
		u.MaxFiles = 10
	}
	if len(u.AllowedPrefixes) == 0 {
		u.AllowedPrefixes = []string{"image/", "video/"}
	}
	if u.ImageQuality == 0 {
		u.ImageQuality = 85
	}
	if u.MaxImageDimension == 0 {
		u.MaxImageDimension = 800
	}
}

// IsAllowedType проверяет MIME-тип по списку префиксов
func (u UploadConfig) IsAllowedType(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	for _, p := range u.AllowedPrefixes {
		if strings.HasPrefix(mimeType, p) {
			return true
		}
	}
	return false
}

// DefaultUploadConfig - значения по умолчанию (для тестов и cmd)
func DefaultUploadConfig() UploadConfig {
	var u UploadConfig
	u.applyDefaults()
	return u
}
