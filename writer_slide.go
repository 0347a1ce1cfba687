package slideshow

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"
)

// pictures returns every picture that carries image data, in slide order.
// The position in this list, plus one, is the picture's media index.
func (w *PPTXWriter) pictures() []*Picture {
	var result []*Picture
	for _, slide := range w.presentation.slides {
		for _, pic := range slide.pictures {
			if pic.hasImage() {
				result = append(result, pic)
			}
		}
	}
	return result
}

func (w *PPTXWriter) mediaIndex(target *Picture) int {
	return w.media[target]
}

func mediaPartName(idx int, ext string) string {
	return fmt.Sprintf("ppt/media/image%d.%s", idx, ext)
}

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the group shape

	relIdx := 2 // rId1 is the slide layout
	for _, pic := range slide.pictures {
		if !pic.hasImage() {
			continue
		}
		shapesXML.WriteString(w.writePictureXML(pic, shapeID, relIdx))
		shapeID++
		relIdx++
	}

	bgXML := ""
	if slide.background != nil && slide.background.Type != FillNone {
		bgXML = "    <p:bg>\n      <p:bgPr>\n"
		bgXML += writeFillXML(slide.background)
		bgXML += "        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	nameAttr := ""
	if slide.name != "" {
		nameAttr = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld%s>
%s    <p:spTree>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, nameAttr, bgXML, emptyGroupShape, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slide *Slide, slideNum int) error {
	var rels strings.Builder
	fmt.Fprintf(&rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>`, nsRelationships, relTypeSlideLayout)

	relIdx := 2
	for _, pic := range slide.pictures {
		if !pic.hasImage() {
			continue
		}
		fmt.Fprintf(&rels, `
  <Relationship Id="rId%d" Type="%s" Target="../media/image%d.%s"/>`,
			relIdx, relTypeImage, w.mediaIndex(pic), pic.mediaExtension())
		relIdx++
	}

	rels.WriteString(`
</Relationships>`)
	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), rels.String())
}

// --- Picture XML ---

func (w *PPTXWriter) writePictureXML(pic *Picture, shapeID, relIdx int) string {
	name := pic.name
	if name == "" {
		name = fmt.Sprintf("Picture %d", shapeID)
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="rId%d"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
      </p:pic>
`, shapeID, xmlEscape(name), xmlEscape(pic.description),
		relIdx,
		pic.offsetX, pic.offsetY, pic.width, pic.height)
}

func writeFillXML(f *Fill) string {
	if f == nil || f.Type != FillSolid {
		return "        <a:noFill/>\n"
	}
	return fmt.Sprintf("        <a:solidFill>\n          <a:srgbClr val=\"%s\"/>\n        </a:solidFill>\n", colorRGB(f.Color))
}

// --- Media ---

// writeMedia stores every picture under ppt/media. File-backed pictures
// are streamed so large decks are never held in memory at once.
func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for i, pic := range w.pictures() {
		name := mediaPartName(i+1, pic.mediaExtension())
		// Image formats are already compressed.
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		if err != nil {
			return fmt.Errorf("failed to create %s in zip: %w", name, err)
		}
		if pic.data != nil {
			if _, err := fw.Write(pic.data); err != nil {
				return err
			}
			continue
		}
		if err := copyImageFile(fw, pic.path); err != nil {
			return err
		}
	}
	return nil
}

func copyImageFile(dst io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}
	defer f.Close()
	n, err := io.Copy(dst, io.LimitReader(f, maxImageFileSize+1))
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}
	if n > maxImageFileSize {
		return fmt.Errorf("image file %s too large (max %d bytes)", path, maxImageFileSize)
	}
	return nil
}
