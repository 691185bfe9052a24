// @title           FURSA API
// @version         1.0
// @description     Маркетплейс исполнителей услуг и талантов (документация Swagger).
// @contact.name    FURSA
// @contact.email   support@fursa.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "fursa_backend/internal/app"

func main() {
	app.Run()
}
