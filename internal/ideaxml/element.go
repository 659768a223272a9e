package ideaxml

import (
	"fmt"

	"github.com/beevik/etree"
)

const fragmentWrapper = "ideaxml-fragment"

// GetElement returns the first direct child of ctx with the given tag and,
// when name is not empty, a matching name attribute. A missing child is
// created, passed to init (if any), and appended as the last child of ctx.
// An existing child is returned unmodified; init only runs on creation.
func GetElement(ctx *etree.Element, tag, name string, init func(*etree.Element)) *etree.Element {
	if el := FindElement(ctx, tag, name); el != nil {
		return el
	}

	el := etree.NewElement(tag)
	if name != "" {
		el.CreateAttr("name", name)
	}
	if init != nil {
		init(el)
	}
	ctx.AddChild(el)

	return el
}

// FindElement is the lookup half of GetElement. It returns nil when no
// direct child matches.
func FindElement(ctx *etree.Element, tag, name string) *etree.Element {
	for _, child := range ctx.ChildElements() {
		if child.FullTag() != tag {
			continue
		}
		if name != "" && child.SelectAttrValue("name", "") != name {
			continue
		}
		return child
	}
	return nil
}

// ReplaceChildren drops every child node of parent and appends the top-level
// nodes of fragment in their original order. Whitespace and comments in the
// fragment are kept. A fragment that does not parse leaves parent untouched.
func ReplaceChildren(parent *etree.Element, fragment string) error {
	wrapped := etree.NewDocument()
	src := "<" + fragmentWrapper + ">" + fragment + "</" + fragmentWrapper + ">"
	if err := wrapped.ReadFromString(src); err != nil {
		return fmt.Errorf("%w: fragment for <%s>: %v", ErrParse, parent.FullTag(), err)
	}

	for len(parent.Child) > 0 {
		parent.RemoveChildAt(0)
	}

	nodes := append([]etree.Token(nil), wrapped.Root().Child...)
	for _, tok := range nodes {
		parent.AddChild(tok)
	}

	return nil
}
