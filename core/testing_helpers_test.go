package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
	"github.com/stretchr/testify/require"
)

// Unix timestamps of consecutive days, late in the evening UTC.
const (
	day1 int64 = 1700000000 // 14.11.2023
	day2       = day1 + 86400
	day3       = day2 + 86400
)

// testConfig returns a validated-looking config for dir with the defaults applied.
func testConfig(dir string) *contract.Config {
	return &contract.Config{
		BaseDir:       dir,
		ChartTitle:    contract.DefaultChartTitle,
		PictureWidth:  contract.DefaultPictureWidth,
		PictureHeight: contract.DefaultPictureHeight,
		Metric:        schema.CountRule,
		Collection:    contract.DefaultCollection,
		TitleField:    contract.DefaultTitleField,
		Collapse:      schema.AdjacentCollapse,
		DateFormat:    contract.DefaultDateFormat,
		Style:         schema.LineStyle,
		Pad:           contract.DefaultPad,
		GridStep:      contract.DefaultGridStep,
		Raster:        schema.NoRaster,
		Output:        schema.TextOut,
	}
}

// chatsJSON renders a snapshot document with n chats, the first titled of which carry a title.
func chatsJSON(n, titled int) string {
	chats := make([]string, n)
	for i := range n {
		title := ""
		if i < titled {
			title = fmt.Sprintf("chat %d", i)
		}
		chats[i] = fmt.Sprintf(`{"id":%d,"users":[],"title":%q}`, i, title)
	}
	return `{"version":2,"chats":[` + strings.Join(chats, ",") + `]}`
}

// writeSnapshot writes a snapshot file named prefix.<ts> with n chats.
func writeSnapshot(t *testing.T, dir, prefix string, ts int64, n int) string {
	t.Helper()
	name := fmt.Sprintf("%s.%d", prefix, ts)
	writeFile(t, dir, name, chatsJSON(n, 0))
	return name
}

// writeFile writes raw content into dir/name.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
