package reqtree

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func writeFile(t *testing.T, root string, relative string, content string) {
	t.Helper()
	path := filepath.Join(root, relative)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), fs.ModePerm); err != nil {
		t.Fatal(err)
	}
}

func descriptor(prefix string, parent string) string {
	content := "settings:\n  digits: 3\n  prefix: " + prefix + "\n  sep: ''\n"
	if parent != "" {
		content += "  parent: " + parent + "\n"
	}
	return content
}

func writeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, ".doorstop.yml", descriptor("REQ", ""))
	writeFile(t, root, "REQ001.yml", "level: 1.0\nheader: Interfaces\nactive: true\n")
	writeFile(t, root, "REQ002.yml", "level: 1.1\nactive: true\nnormative: true\ntext: |\n  The tool **shall** print the document hierarchy.\n")
	writeFile(t, root, "REQ003.yml", "level: 1.2\nactive: false\ntext: Obsolete behaviour\n")
	writeFile(t, root, "REQ004.yml", "level: 2\ntext: Outline printing\n")
	writeFile(t, root, "tut/.doorstop.yml", descriptor("TUT", "REQ"))
	writeFile(t, root, "tut/TUT001.yml", "level: 1\ntext: Walking through the hierarchy\n")
	return root
}

func openFixture(t *testing.T, config CreateConfig) (Reqtree, *bytes.Buffer) {
	t.Helper()
	var buffer bytes.Buffer
	config.Output = &buffer
	handle, err := Open(writeFixture(t), config)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { handle.Close() })
	return handle, &buffer
}

func TestOpen(t *testing.T) {
	registry := prometheus.NewRegistry()
	handle, _ := openFixture(t, CreateConfig{Metrics: registry})

	if !filepath.IsAbs(handle.Root()) {
		t.Error("root not absolute:", handle.Root())
	}
	if handle.Tree().Len() != 2 || handle.Tree().ItemCount() != 5 {
		t.Error("unexpected tree size", handle.Tree().Len(), handle.Tree().ItemCount())
	}
	if count, err := testutil.GatherAndCount(registry, "reqtree_tree_loads_total"); err != nil || count != 1 {
		t.Error("load not recorded", count, err)
	}
}

func TestPrintTree(t *testing.T) {
	handle, buffer := openFixture(t, CreateConfig{})
	handle.PrintTree()

	lines := strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buffer.String())
	}
	if !strings.HasPrefix(lines[0], "REQ (4 items") {
		t.Error("unexpected root line", lines[0])
	}
	if !strings.HasPrefix(lines[1], "└── TUT (1 item") {
		t.Error("unexpected child line", lines[1])
	}
}

func TestPrintOutline(t *testing.T) {
	handle, buffer := openFixture(t, CreateConfig{})
	if err := handle.PrintOutline("REQ"); err != nil {
		t.Fatal(err)
	}

	output := buffer.String()
	for _, expected := range []string{
		"├── 1.0 REQ001 Interfaces\n",
		"│   ├── 1.1 REQ002 The tool shall print the document hierarchy.\n",
		"│   └── 1.2 REQ003 Obsolete behaviour [inactive]\n",
		"└── 2 REQ004 Outline printing\n",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("outline lacks %q:\n%s", expected, output)
		}
	}
	if strings.Contains(output, "parent document") {
		t.Error("root document reported with parent")
	}

	buffer.Reset()
	if err := handle.PrintOutline("TUT"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buffer.String(), "parent document: REQ") {
		t.Error("parent not reported:", buffer.String())
	}
}

func TestPrintOutlineUnknownPrefix(t *testing.T) {
	handle, buffer := openFixture(t, CreateConfig{})
	err := handle.PrintOutline("NOPE")
	if !errors.Is(err, ErrUnknownPrefix) {
		t.Error("unexpected error", err)
	}
	if buffer.Len() != 0 {
		t.Error("output despite error:", buffer.String())
	}
}

func TestPrintItem(t *testing.T) {
	handle, buffer := openFixture(t, CreateConfig{})
	if err := handle.PrintItem("REQ002"); err != nil {
		t.Fatal(err)
	}
	output := buffer.String()
	for _, expected := range []string{"REQ002 (level 1.1)", "document:  REQ", "normative: yes", "  The tool **shall** print"} {
		if !strings.Contains(output, expected) {
			t.Errorf("item output lacks %q:\n%s", expected, output)
		}
	}

	if err := handle.PrintItem("REQ999"); !errors.Is(err, ErrUnknownItem) {
		t.Error("unexpected error", err)
	}
}

func TestQuietModeOmitsDetails(t *testing.T) {
	handle, buffer := openFixture(t, CreateConfig{Verbosity: QuietMode})
	handle.PrintSummary()
	if buffer.Len() != 0 {
		t.Error("summary printed in quiet mode:", buffer.String())
	}
	if err := handle.PrintItem("TUT001"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buffer.String(), "document:") || !strings.Contains(buffer.String(), "Walking through") {
		t.Error("unexpected quiet item output:", buffer.String())
	}
}

func TestPrintSummary(t *testing.T) {
	handle, buffer := openFixture(t, CreateConfig{Verbosity: VerboseMode})
	handle.PrintSummary()
	if !strings.Contains(buffer.String(), "2 documents with 5 items in total") {
		t.Error("unexpected summary:", buffer.String())
	}
	if !strings.Contains(buffer.String(), "root document: REQ") {
		t.Error("verbose root missing:", buffer.String())
	}
}

func TestFind(t *testing.T) {
	registry := prometheus.NewRegistry()
	handle, _ := openFixture(t, CreateConfig{Metrics: registry})

	results, err := handle.Find("hierarchy", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatal("expected two results, got", results)
	}
	found := map[string]SearchResult{}
	for _, result := range results {
		found[result.UID] = result
	}
	tut, ok := found["TUT001"]
	if !ok || tut.Prefix != "TUT" || tut.Level != "1" {
		t.Error("unexpected TUT001 result", tut)
	}
	if !strings.HasSuffix(tut.Path, filepath.Join("tut", "TUT001.yml")) {
		t.Error("unexpected path", tut.Path)
	}
	if _, ok := found["REQ002"]; !ok {
		t.Error("REQ002 not found")
	}

	none, err := handle.Find("nonexistentword", 5)
	if err != nil || len(none) != 0 {
		t.Error("unexpected results", none, err)
	}
	expected := `
		# HELP reqtree_search_queries_total Total number of search queries
		# TYPE reqtree_search_queries_total counter
		reqtree_search_queries_total 2
	`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "reqtree_search_queries_total"); err != nil {
		t.Error(err)
	}
}

func TestOpenErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".doorstop.yml", descriptor("REQ", ""))
	writeFile(t, root, "tut/.doorstop.yml", descriptor("TUT", "XYZ"))

	_, err := Open(root, CreateConfig{})
	if !errors.Is(err, ErrDanglingParent) {
		t.Fatal("unexpected error", err)
	}
	if subject, found := ErrorSubject(err); !found || subject != "TUT" {
		t.Error("unexpected subject", subject)
	}

	_, err = Open(filepath.Join(root, "missing"), CreateConfig{})
	if !errors.Is(err, ErrDiscovery) {
		t.Error("unexpected error", err)
	}
	if _, found := ErrorSubject(errors.New("other")); found {
		t.Error("subject extracted from foreign error")
	}
}

func TestServe(t *testing.T) {
	handle, _ := openFixture(t, CreateConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	served := make(chan error, 1)
	go func() {
		served <- handle.Serve(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "search_items", Arguments: map[string]any{"query": "outline"}})
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError || len(result.Content) == 0 {
		t.Fatal("search_items failed", result.Content)
	}
	if text, ok := result.Content[0].(*mcp.TextContent); !ok || !strings.Contains(text.Text, `"uid":"REQ004"`) {
		t.Error("unexpected search content", result.Content[0])
	}
	session.Close()

	cancel()
	if err := <-served; err != nil {
		t.Error("serve ended with error", err)
	}
}
