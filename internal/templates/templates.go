package templates

import (
	_ "embed"
)

//go:embed dashboard.html
var DashboardHTML string
