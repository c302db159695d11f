package main

import (
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/nilapparel/nilgen/gen"
	"github.com/nilapparel/nilgen/gen/common"
)

const orders = "Name,Team,Color List,Art Type,Class,First Name,Last Name,Jersey Characters,Sport Specific\n" +
	"jl-23,Lions,Blue,Classic,Varsity: Senior: 2025,James,Lee,23,Basketball\n" +
	"lost,Tigers,Red,Retro,Senior,Ana,Diaz,9,Golf\n"

func setupAssets(t *testing.T) (*common.Config, string) {
	t.Helper()
	config, err := common.LoadConfig("config/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	config.AssetsDir = t.TempDir()
	config.OutputDir = t.TempDir()

	dir := filepath.Join(config.AssetsDir, "Lions-Blue-Classic-2025")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(dir, config.Bundle.Blank))
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(f, image.NewRGBA(image.Rect(0, 0, 300, 300)))
	f.Close()
	coords := `{"Number": {"coords": [100, 10, 200, 90]},
		"LastName": {"coords": [20, 150, 280, 210], "border": "True", "border_width": 2},
		"Sport": {"coords": [50, 230, 250, 270]}}`
	files := map[string][]byte{
		config.Bundle.Coords:     []byte(coords),
		config.Bundle.TextFont:   goregular.TTF,
		config.Bundle.NumberFont: goregular.TTF,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	csvFile := filepath.Join(t.TempDir(), "to_create.csv")
	if err := os.WriteFile(csvFile, []byte(orders), 0o644); err != nil {
		t.Fatal(err)
	}
	return config, csvFile
}

func TestRunBatch(t *testing.T) {
	config, csvFile := setupAssets(t)
	log := common.NewLog()
	if failed := runBatch(csvFile, config, log); failed != 1 {
		t.Errorf("Expected 1 failed row, got %d", failed)
	}
	if _, err := os.Stat(filepath.Join(config.OutputDir, "jl-23"+config.OutputSuffix+".png")); err != nil {
		t.Errorf("Missing output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(config.OutputDir, "lost"+config.OutputSuffix+".png")); err == nil {
		t.Error("Failed row should not be written")
	}
	if failed := runBatch(filepath.Join(t.TempDir(), "missing.csv"), config, log); failed != 1 {
		t.Errorf("Expected a missing sheet to fail, got %d", failed)
	}
}

func TestTestRouteSerial(t *testing.T) {
	runTestSerial(t, "/test", 5)
}

func TestTestRouteConc(t *testing.T) {
	runTestConc(t, "/test", 10)
}

func runTestSerial(t *testing.T, url string, N int) {
	config, csvFile := setupAssets(t)
	router, _ := gen.GetServer(true, config, []string{csvFile})

	for n := 0; n < N; n++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: got %d", n, w.Code)
		}
	}
}

func runTestConc(t *testing.T, url string, N int) {
	config, csvFile := setupAssets(t)
	router, _ := gen.GetServer(true, config, []string{csvFile})

	var wg sync.WaitGroup
	codes := make([]int, N)
	wg.Add(N)
	for n := 0; n < N; n++ {
		go func(n int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", url, nil)
			router.ServeHTTP(w, req)
			codes[n] = w.Code
		}(n)
	}
	wg.Wait()
	for n, code := range codes {
		if code != http.StatusOK {
			t.Errorf("Request %d: got %d", n, code)
		}
	}
}
