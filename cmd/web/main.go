// @title           DevCollab API
// @version         1.0
// @description     Skill-exchange backend: accounts, learning posts and pairing sessions.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "github.com/laakri/DevCollab/internal/app"

func main() {
	app.Run()
}
