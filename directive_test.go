package pandocreader

import "testing"

func TestRestoreLinkDirectives(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare attribute value",
			input: `"%7Bstatic%7Dpath"`,
			want:  `"{static}path"`,
		},
		{
			name:  "anchor",
			input: `<p><a href="%7Bfilename%7D/posts/other.md">other</a></p>`,
			want:  `<p><a href="{filename}/posts/other.md">other</a></p>`,
		},
		{
			name:  "image",
			input: `<img src="%7Bstatic%7D/images/a.png" alt="a" />`,
			want:  `<img src="{static}/images/a.png" alt="a" />`,
		},
		{
			name:  "several",
			input: `<a href="%7Bfilename%7Da.md">a</a> <a href="%7Btag%7Dgo">go</a>`,
			want:  `<a href="{filename}a.md">a</a> <a href="{tag}go">go</a>`,
		},
		{
			name:  "empty remainder",
			input: `<a href="%7Bindex%7D">home</a>`,
			want:  `<a href="{index}">home</a>`,
		},
		{
			name:  "not at start of value",
			input: `<a href="/x/%7Bstatic%7Dpath">x</a>`,
			want:  `<a href="/x/%7Bstatic%7Dpath">x</a>`,
		},
		{
			name:  "uppercase directive untouched",
			input: `<a href="%7BSTATIC%7Dpath">x</a>`,
			want:  `<a href="%7BSTATIC%7Dpath">x</a>`,
		},
		{
			name:  "no directive",
			input: "<h1 id=\"title\">Title</h1>\n<p>Plain %7B text %7D</p>\n",
			want:  "<h1 id=\"title\">Title</h1>\n<p>Plain %7B text %7D</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RestoreLinkDirectives(tt.input)
			if got != tt.want {
				t.Errorf("RestoreLinkDirectives(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
