package e2etest

import (
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"strings"
)

// FindControlForLabel finds the input, select or textarea a label in form belongs to. The label either names the
// control with its for attribute or wraps it.
func FindControlForLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	label := form.Find("label").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == labelText
	})
	if label.Length() == 0 {
		label = form.Find(fmt.Sprintf("label:contains(%q)", labelText))
	}
	if label.Length() == 0 {
		return nil, fmt.Errorf("label not found: %s", labelText)
	}
	label = label.First()

	const controls = "input,select,textarea"
	control := label.Find(controls)
	if id, ok := label.Attr("for"); ok {
		control = form.Find("#" + id).Filter(controls)
	}
	if control.Length() == 0 {
		return nil, fmt.Errorf("control not found for label: %s", labelText)
	}
	return control.First(), nil
}

// FindForm finds a form in the doc identified with action formActionUrlPath and returns the form selection.
func FindForm(doc *goquery.Document, formActionURLPath string) (*goquery.Selection, error) {
	form := doc.Find(fmt.Sprintf("form[action='%s']", formActionURLPath))
	if form.Length() == 0 {
		return nil, fmt.Errorf("form not found: %s", formActionURLPath)
	}
	return form.First(), nil
}

// Text returns the trimmed text of the first element matching selector.
func Text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
