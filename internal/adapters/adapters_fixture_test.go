package adapters

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var siteTime = time.Date(2026, time.February, 10, 8, 30, 0, 0, time.UTC)

// memSite writes files below /site in an in-memory file system.
func memSite(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		full := "/site" + name
		require.NoError(t, afero.WriteFile(fsys, full, []byte(content), 0644))
		require.NoError(t, fsys.Chtimes(full, siteTime, siteTime))
	}
	return fsys
}

func sampleSite(t *testing.T) afero.Fs {
	return memSite(t, map[string]string{
		"/scripts/jquery.js": "(function () {})();\n",
		"/scripts/site.js": "/// <reference path=\"jquery.js\" />\n" +
			"var site = {};\n",
		"/scripts/mycomponent.js": "// component\n" +
			"/// <reference path=\"~/scripts/site.js\" />\n\n" +
			"/// <reference path=\"/scripts/jquery.js?v=3\" />\n" +
			"site.component = {};\n" +
			"/// <reference path=\"ignored.js\" />\n",
		"/scripts/home/index.js":   "/// <reference path=\"../mycomponent.js\" />\n",
		"/scripts/home/partial.js": "/// <reference path='../site.js'/>\n",
		"/styles/reset.css":        "html { margin: 0; }\n",
		"/styles/site.css":         "@import url(\"reset.css\");\n/* @import \"commented.css\"; */\nbody {}\n",
		"/styles/theme.less":       "@import (reference) \"mixins\";\n@import url(//cdn.example.com/fonts.css) screen;\n",
		"/styles/mixins.less":      ".m() {}\n",
		"/images/logo.png":         "png",
	})
}
