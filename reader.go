package slideshow

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Reader is the interface for presentation readers.
type Reader interface {
	Read(path string) (*Presentation, error)
	ReadFromReader(r io.ReaderAt, size int64) (*Presentation, error)
}

// ReaderType represents the input format.
type ReaderType string

const (
	ReaderPowerPoint2007 ReaderType = "PowerPoint2007"
)

// NewReader creates a reader for the given format.
func NewReader(format ReaderType) (Reader, error) {
	switch format {
	case ReaderPowerPoint2007:
		return &PPTXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported reader format: %s", format)
	}
}

// PPTXReader reads the picture decks PPTXWriter produces: slide size,
// core properties, slide backgrounds and every p:pic with its geometry and
// image bytes. Text, shapes and other drawing objects are ignored.
type PPTXReader struct{}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content from a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

// Read reads a presentation from a file path.
func (r *PPTXReader) Read(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	src := newZipSource(zr)
	pres := New()

	// Missing core properties are acceptable.
	_ = src.readCoreProperties(pres)

	if data, err := src.read(thumbnailPart); err == nil {
		pres.thumbnailData = data
	}

	slideRels, err := src.readPresentation(pres)
	if err != nil {
		return nil, err
	}

	presRels, err := src.readRelationships("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(presRels))
	for _, rel := range presRels {
		targets[rel.ID] = resolveRelativePath("ppt", rel.Target)
	}

	for _, relID := range slideRels {
		target, ok := targets[relID]
		if !ok {
			continue
		}
		slide, err := src.readSlide(target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// zipSource indexes an archive and enforces the extraction limits across
// every part read from it.
type zipSource struct {
	files map[string]*zip.File
	total int64
}

func newZipSource(zr *zip.Reader) *zipSource {
	m := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		m[f.Name] = f
	}
	return &zipSource{files: m}
}

func (s *zipSource) read(name string) ([]byte, error) {
	f, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found in zip: %s", name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	s.total += int64(len(data))
	if s.total > maxZipTotalSize {
		return nil, fmt.Errorf("archive content exceeds maximum allowed size (%d bytes)", maxZipTotalSize)
	}
	return data, nil
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

// readRelationships returns nil when the part has no relationships file.
func (s *zipSource) readRelationships(name string) ([]xmlRelForRead, error) {
	data, err := s.read(name)
	if err != nil {
		return nil, nil
	}
	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", name, err)
	}
	return rels.Relationships, nil
}

// relsPathFor returns the relationships part of a part,
// e.g. ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPathFor(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part. Targets that would escape the package root are kept
// under ppt/.
func resolveRelativePath(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	resolved := path.Clean(path.Join(baseDir, target))
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return "ppt/" + path.Base(resolved)
	}
	return resolved
}

// --- Presentation ---

type xmlPresentationForRead struct {
	SldIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz struct {
		CX   int64  `xml:"cx,attr"`
		CY   int64  `xml:"cy,attr"`
		Type string `xml:"type,attr"`
	} `xml:"sldSz"`
}

// readPresentation reads the slide size into pres and returns the slide
// relationship IDs in presentation order.
func (s *zipSource) readPresentation(pres *Presentation) ([]string, error) {
	data, err := s.read("ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to read presentation.xml: %w", err)
	}
	var doc xmlPresentationForRead
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}

	if doc.SldSz.CX > 0 && doc.SldSz.CY > 0 {
		layout := NewDocumentLayout()
		if doc.SldSz.CX != layout.CX || doc.SldSz.CY != layout.CY {
			layout.SetCustomLayout(doc.SldSz.CX, doc.SldSz.CY)
			if doc.SldSz.Type != "" && doc.SldSz.Type != "custom" {
				layout.Name = doc.SldSz.Type
			}
		}
		pres.layout = layout
	}

	ids := make([]string, 0, len(doc.SldIDs))
	for _, id := range doc.SldIDs {
		ids = append(ids, id.RID)
	}
	return ids, nil
}

type xmlCorePropertiesForRead struct {
	Creator        string `xml:"creator"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Title          string `xml:"title"`
	Description    string `xml:"description"`
	Subject        string `xml:"subject"`
	Keywords       string `xml:"keywords"`
	Category       string `xml:"category"`
	Revision       string `xml:"revision"`
}

func (s *zipSource) readCoreProperties(pres *Presentation) error {
	data, err := s.read("docProps/core.xml")
	if err != nil {
		return err
	}
	var core xmlCorePropertiesForRead
	if err := xml.Unmarshal(data, &core); err != nil {
		return err
	}
	props := pres.properties
	props.Creator = core.Creator
	props.LastModifiedBy = core.LastModifiedBy
	props.Title = core.Title
	props.Description = core.Description
	props.Subject = core.Subject
	props.Keywords = core.Keywords
	props.Category = core.Category
	props.Revision = core.Revision
	return nil
}

// --- Slides ---

type xmlSlideForRead struct {
	CSld struct {
		Name string `xml:"name,attr"`
		Bg   *struct {
			SolidFill *struct {
				SrgbClr struct {
					Val string `xml:"val,attr"`
				} `xml:"srgbClr"`
			} `xml:"bgPr>solidFill"`
		} `xml:"bg"`
		Pics []xmlPicForRead `xml:"spTree>pic"`
	} `xml:"cSld"`
}

type xmlPicForRead struct {
	CNvPr struct {
		Name  string `xml:"name,attr"`
		Descr string `xml:"descr,attr"`
	} `xml:"nvPicPr>cNvPr"`
	Blip struct {
		Embed string `xml:"embed,attr"`
	} `xml:"blipFill>blip"`
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"spPr>xfrm>off"`
	Ext struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"spPr>xfrm>ext"`
}

func (s *zipSource) readSlide(part string) (*Slide, error) {
	data, err := s.read(part)
	if err != nil {
		return nil, err
	}
	var doc xmlSlideForRead
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse slide: %w", err)
	}

	rels, err := s.readRelationships(relsPathFor(part))
	if err != nil {
		return nil, err
	}
	media := make(map[string]string, len(rels))
	for _, rel := range rels {
		if rel.Type == relTypeImage {
			media[rel.ID] = resolveRelativePath(path.Dir(part), rel.Target)
		}
	}

	slide := newSlide()
	slide.name = doc.CSld.Name
	if bg := doc.CSld.Bg; bg != nil && bg.SolidFill != nil {
		slide.background = NewFill().SetSolid(NewColor(bg.SolidFill.SrgbClr.Val))
	}

	for _, p := range doc.CSld.Pics {
		pic := slide.CreatePicture()
		pic.name = p.CNvPr.Name
		pic.description = p.CNvPr.Descr
		pic.offsetX, pic.offsetY = p.Off.X, p.Off.Y
		pic.width, pic.height = p.Ext.CX, p.Ext.CY

		target, ok := media[p.Blip.Embed]
		if !ok {
			continue
		}
		img, err := s.read(target)
		if err != nil {
			return nil, err
		}
		pic.SetImageData(img, guessMimeFromPath(target))
	}
	return slide, nil
}
