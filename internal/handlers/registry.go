package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	ProviderHandler *ProviderHandler
	TalentHandler   *TalentHandler
	SearchHandler   *SearchHandler
	UploadHandler   *UploadHandler
}
