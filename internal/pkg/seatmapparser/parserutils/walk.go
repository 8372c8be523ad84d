package parserutils

import "github.com/beevik/etree"

// Walk visits root and every descendant element in document order.
// The walk stops at the first error returned by visit.
func Walk(root *etree.Element, visit func(*etree.Element) error) error {
	if root == nil {
		return nil
	}

	if err := visit(root); err != nil {
		return err
	}

	for _, child := range root.ChildElements() {
		if err := Walk(child, visit); err != nil {
			return err
		}
	}

	return nil
}

// Find returns the first element at or below root, in document order, accepted by match.
func Find(root *etree.Element, match func(*etree.Element) bool) *etree.Element {
	if root == nil {
		return nil
	}

	if match(root) {
		return root
	}

	for _, child := range root.ChildElements() {
		if found := Find(child, match); found != nil {
			return found
		}
	}

	return nil
}

// FindLast returns the last element at or below root, in document order, accepted by match.
func FindLast(root *etree.Element, match func(*etree.Element) bool) *etree.Element {
	if root == nil {
		return nil
	}

	children := root.ChildElements()
	for i := len(children) - 1; i >= 0; i-- {
		if found := FindLast(children[i], match); found != nil {
			return found
		}
	}

	if match(root) {
		return root
	}

	return nil
}

// HasLocalTag matches elements by tag name, ignoring the namespace.
func HasLocalTag(tag string) func(*etree.Element) bool {
	return func(e *etree.Element) bool {
		return LocalTag(e) == tag
	}
}

// Attr returns the value of the unqualified attribute key.
func Attr(e *etree.Element, key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}

	return "", false
}

// Attrs returns the unqualified attributes of e, namespace declarations excluded.
func Attrs(e *etree.Element) map[string]string {
	fields := make(map[string]string, len(e.Attr))
	for _, a := range e.Attr {
		if a.Space != "" || a.Key == "xmlns" {
			continue
		}

		fields[a.Key] = a.Value
	}

	return fields
}
