// Package lib holds cross-package audit tests for randomness sources, file
// modes and panics on untrusted input.
package lib

import (
	"bytes"
	"context"
	"crypto/rand"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/go-i2p/reesa/lib/blockcipher"
	"github.com/go-i2p/reesa/lib/crypto/rsa"
	"github.com/go-i2p/reesa/lib/keys"
	"github.com/go-i2p/reesa/lib/padding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walkSources calls fn for every non-test Go file under lib/.
func walkSources(t *testing.T, fn func(path string)) {
	t.Helper()
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		fn(path)
		return nil
	})
	require.NoError(t, err, "failed to walk lib directory")
}

// TestAllRandomnessFromCryptoRand verifies that no library code imports
// math/rand.
func TestAllRandomnessFromCryptoRand(t *testing.T) {
	walkSources(t, func(path string) {
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return
		}
		for _, imp := range node.Imports {
			p := strings.Trim(imp.Path.Value, `"`)
			if p == "math/rand" || p == "math/rand/v2" {
				t.Errorf("File %s imports %s - use crypto/rand or go-i2p/crypto/rand instead", path, p)
			}
		}
	})
}

// TestNoWorldReadableModes verifies that library code never creates files
// or directories with group/other permissions.
func TestNoWorldReadableModes(t *testing.T) {
	loose := regexp.MustCompile(`\b0o?(644|664|666|755|775|777)\b`)
	walkSources(t, func(path string) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		for i, line := range bytes.Split(content, []byte("\n")) {
			if loose.Match(line) {
				t.Errorf("%s:%d uses a permissive file mode: %s", path, i+1, strings.TrimSpace(string(line)))
			}
		}
	})
}

// TestNoPanicsInLibrary verifies that no library code calls panic.
func TestNoPanicsInLibrary(t *testing.T) {
	walkSources(t, func(path string) {
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			return
		}
		ast.Inspect(node, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				if ident, ok := call.Fun.(*ast.Ident); ok && ident.Name == "panic" {
					t.Errorf("panic call at %s", fset.Position(call.Pos()))
				}
			}
			return true
		})
	})
}

// TestMalformedInputDoesNotPanic feeds random and truncated input to every
// parser of untrusted data.
func TestMalformedInputDoesNotPanic(t *testing.T) {
	engine := rsa.NewEngine(256, 65537)
	key := engine.LoadKey("61", "53", "17", "2753", "3233", "3120")
	require.NotNil(t, key)
	driver, err := blockcipher.NewDriver(blockcipher.Widths{Plain: 15, Padded: 16, Cipher: 32}, engine)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		buf := make([]byte, i%70)
		_, err := rand.Read(buf)
		require.NoError(t, err)

		assert.NotPanics(t, func() { _, _ = keys.Decode(buf) })
		assert.NotPanics(t, func() { _, _ = padding.Unpad(buf, 15) })
		assert.NotPanics(t, func() {
			_, _ = driver.Decrypt(context.Background(), key, bytes.NewReader(buf), &bytes.Buffer{})
		})
	}
}
