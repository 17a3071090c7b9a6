package postprocess

import "regexp"

var shellCommand = regexp.MustCompile(`<code>\$\s*(.*?)</code>`)

const copyButtonTemplate = `<code>${1}</code> <button class="btn-copy" data-balloon-pos="right" data-clipboard-text="${1}">Copy</button>`

// copyButtons strips the "$ " prompt from shell command code spans and adds a copy button.
func copyButtons(page *Page) error {
	page.Body = AddCopyButtons(page.Body)
	return nil
}

// AddCopyButtons applies the copy button rewrite to an HTML fragment.
func AddCopyButtons(s string) string {
	return shellCommand.ReplaceAllString(s, copyButtonTemplate)
}
