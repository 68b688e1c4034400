package main

import (
	"testing"

	"github.com/odyssey-erp/svgchart/internal/app"
	_ "github.com/odyssey-erp/svgchart/internal/testing/guard"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatal("expected guard to enable test mode")
	}
	main()
}
