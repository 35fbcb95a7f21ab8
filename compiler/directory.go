package compiler

import (
	"go.uber.org/zap"

	"github.com/maja42/declrom/internal"
)

// Directory is the top-level list of resource lists.
type Directory struct {
	Lists []ResourceList
}

// EncodedDirectory is the assembled directory, including all lists.
// TableOffset is the position of the directory's record table within Data.
type EncodedDirectory struct {
	TableOffset int
	Data        []byte
}

// Len returns the total number of bytes of the directory.
func (d EncodedDirectory) Len() int {
	return len(d.Data)
}

// AssembleDirectory assembles every resource list and packs them like the resources of a list,
// except that each directory entry points at the record table of its list instead of its start.
func AssembleDirectory(dir Directory) (EncodedDirectory, error) {
	lists := make([]EncodedList, 0, len(dir.Lists))
	for _, l := range dir.Lists {
		enc, err := AssembleList(l)
		if err != nil {
			return EncodedDirectory{}, err
		}
		lists = append(lists, enc)
	}

	w := internal.NewWriter()
	for _, l := range lists {
		w.WriteBytes(l.Data)
	}
	tableOffset := w.Len()

	soffset := -tableOffset
	for _, l := range lists {
		offset := soffset + l.TableOffset
		if !internal.FitsOffset(offset) {
			return EncodedDirectory{}, OffsetOverflow([]string{"directory", listContext(l.ID)}, offset)
		}
		w.WriteRecord(l.ID, int32(offset))
		soffset += l.Len() - internal.RecordSize
	}
	w.WriteTerminator()

	Logger().Debug("assembled directory",
		zap.Int("lists", len(lists)),
		zap.Int("tableOffset", tableOffset),
		zap.Int("length", w.Len()))

	return EncodedDirectory{
		TableOffset: tableOffset,
		Data:        w.Bytes(),
	}, nil
}
