package compiler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/maja42/declrom/internal"
)

// ResourceList is an ordered list of resources.
// The order determines the layout of the payload region and the record table.
type ResourceList struct {
	ID        uint8
	Resources []Resource
}

// EncodedList is an assembled resource list.
// TableOffset is the position of the record table within Data.
type EncodedList struct {
	ID          uint8
	TableOffset int
	Data        []byte
}

// Len returns the total number of bytes of the list, including its record table.
func (l EncodedList) Len() int {
	return len(l.Data)
}

// AssembleList encodes all resources of the list and packs them into a single block:
// the payloads, followed by a record table with one entry per resource and the terminator.
func AssembleList(list ResourceList) (EncodedList, error) {
	data, tableOffset, err := assembleResources(list.Resources)
	if err != nil {
		return EncodedList{}, within(err, listContext(list.ID))
	}

	Logger().Debug("assembled resource list",
		zap.Uint8("id", list.ID),
		zap.Int("resources", len(list.Resources)),
		zap.Int("tableOffset", tableOffset),
		zap.Int("length", len(data)))

	return EncodedList{
		ID:          list.ID,
		TableOffset: tableOffset,
		Data:        data,
	}, nil
}

// assembleResources returns the packed resources and the position of their record table.
func assembleResources(resources []Resource) ([]byte, int, error) {
	encoded := make([]Encoded, 0, len(resources))
	for i, r := range resources {
		enc, err := Encode(r)
		if err != nil {
			return nil, 0, within(err, resourceContext(i, r))
		}
		encoded = append(encoded, enc)
	}

	w := internal.NewWriter()
	for _, enc := range encoded {
		if enc.Kind != KindInlineWord {
			w.WriteBytes(enc.Data)
		}
	}
	tableOffset := w.Len()

	// The first entry points back across the whole payload region;
	// every following entry is 4 bytes further away from the start of the payloads.
	// Inline entries are not counted: they leave the running offset untouched.
	soffset := -tableOffset
	for i, enc := range encoded {
		if enc.Kind == KindInlineWord {
			w.WriteInline(enc.ID, uint16(enc.Data[0])<<8|uint16(enc.Data[1]))
			continue
		}
		if !internal.FitsOffset(soffset) {
			return nil, 0, OffsetOverflow([]string{resourceContext(i, resources[i])}, soffset)
		}
		w.WriteRecord(enc.ID, int32(soffset))
		soffset += enc.Len() - internal.RecordSize
	}
	w.WriteTerminator()

	return w.Bytes(), tableOffset, nil
}

func listContext(id uint8) string {
	return fmt.Sprintf("list %d", id)
}
