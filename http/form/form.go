package form

import "iter"

// Data is a single form entry. Filename is non-empty only for file parts of a
// multipart body; Type and Charset are populated from the part's headers (or
// configured defaults) for multipart entries.
type Data struct {
	Name     string
	Filename string
	Type     string
	Charset  string
	Value    string
}

// Form is an ordered sequence of form entries. Duplicate names are preserved
// in their encounter order.
type Form []Data

// Name returns the first Data matching the name.
func (f Form) Name(name string) (Data, bool) {
	for data := range f.Names(name) {
		return data, true
	}

	return Data{}, false
}

// Names returns an iterator over all Data matching the name.
func (f Form) Names(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.Name == name {
				if !yield(entry) {
					break
				}
			}
		}
	}
}

// File returns the first Data matching the filename.
func (f Form) File(name string) (Data, bool) {
	for data := range f.Files(name) {
		return data, true
	}

	return Data{}, false
}

// Files returns an iterator over all Data matching the filename.
func (f Form) Files(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.Filename == name {
				if !yield(entry) {
					break
				}
			}
		}
	}
}
