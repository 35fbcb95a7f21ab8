package compiler

import "fmt"

// Kind identifies the payload encoding of a resource.
type Kind uint8

const (
	KindLong Kind = iota + 1
	KindString
	KindVidParams
	KindRsrcType
	KindInlineWord
	KindResourceList
)

// kindTags are the names used for each kind in declaration descriptions.
var kindTags = [...]string{
	KindLong:         "Long",
	KindString:       "String",
	KindVidParams:    "VidParams",
	KindRsrcType:     "RsrcType",
	KindInlineWord:   "InlineWord",
	KindResourceList: "ResourceList",
}

func (k Kind) String() string {
	if int(k) < len(kindTags) && kindTags[k] != "" {
		return kindTags[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind for a description type tag.
func ParseKind(tag string) (Kind, error) {
	for k, t := range kindTags {
		if t != "" && t == tag {
			return Kind(k), nil
		}
	}
	return 0, UnknownResourceKind(nil, tag)
}
