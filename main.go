package main

import (
	"fmt"
	"os"

	"github.com/shandysiswandi/talentflow/internal/cli"
)

// @title           Talentflow API
// @version         1.0
// @description     Talentflow provides employee registration, company profile, staffing and site content APIs.
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
