package pandocreader

import "regexp"

// reLinkDirective matches a quoted attribute value whose leading link
// directive (e.g. {static}, {filename}) was percent-encoded by pandoc.
var reLinkDirective = regexp.MustCompile(`"%7B(?P<what>[a-z]+)%7D(?P<remainder>[^"]*)"`)

// RestoreLinkDirectives undoes pandoc's URL-encoding of link directive braces
// inside quoted attributes so the site generator can resolve them later:
//
//	<a href="%7Bfilename%7D/post.md">  ->  <a href="{filename}/post.md">
//
// Input without such attributes is returned unchanged.
func RestoreLinkDirectives(html string) string {
	return reLinkDirective.ReplaceAllString(html, `"{${what}}${remainder}"`)
}
