package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_CreatesDatedSlugFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "json"))

	filename, err := w.Write(map[string]string{"videoId": "abc"}, "My Video: Part 1!")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_My_Video_Part_1_\.json$`), filename)

	buf, err := os.ReadFile(filepath.Join(dir, "json", filename))
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf, &decoded))
	assert.Equal(t, "abc", decoded["videoId"])
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello_world", slugify("hello world"))
	assert.Equal(t, "a-b_c", slugify("a-b c"))
	assert.Equal(t, "video", slugify(""))
	assert.Equal(t, "_", slugify("???"))
}
