package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chorale/internal/media"
)

// Namespace declarations shared by every presentation part.
const xmlns = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const rootRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/></Relationships>`

// emptySpTree is the mandatory group-shape preamble of every shape tree.
const emptySpTree = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const slideMasterXML = xmlHeader + `<p:sldMaster ` + xmlns + `><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + emptySpTree + `</p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`

const slideMasterRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

const slideLayoutXML = xmlHeader + `<p:sldLayout ` + xmlns + ` type="blank" preserve="1"><p:cSld name="Blank"><p:spTree>` + emptySpTree + `</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`

// themeXML is the minimal valid theme: an Office color scheme, one font
// scheme, and the mandatory three-entry format scheme lists.
const themeXML = xmlHeader + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office"><a:themeElements><a:clrScheme name="Office"><a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2><a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2><a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4><a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6><a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink></a:clrScheme><a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// Write serializes the deck as a complete presentation archive.
func (d *Deck) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", rootRelsXML},
		{"ppt/presentation.xml", d.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", d.presentationRelsXML()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, []byte(part.data)); err != nil {
			return err
		}
	}

	for i, s := range d.slides {
		n := i + 1
		body, err := d.slideXML(s)
		if err != nil {
			return err
		}
		if err := writePart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", n), []byte(body)); err != nil {
			return err
		}
		if err := writePart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), []byte(slideRelsXML(s, n))); err != nil {
			return err
		}
		if s.imagePath != "" {
			if err := embedMedia(zw, s.imagePath, n); err != nil {
				return err
			}
		}
	}

	return zw.Close()
}

// WriteFile serializes the deck to path.
func (d *Deck) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	if err := d.Write(f); err != nil {
		f.Close()
		os.Remove(path)
		return &Error{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Path: path, Err: err}
	}
	return nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func embedMedia(zw *zip.Writer, path string, n int) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.Create(fmt.Sprintf("ppt/media/image%d%s", n, strings.ToLower(filepath.Ext(path))))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func (d *Deck) contentTypesXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	seen := map[string]bool{}
	for _, s := range d.slides {
		if s.imagePath == "" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(s.imagePath))
		if ct, ok := imageContentTypes[ext]; ok && !seen[ext] {
			seen[ext] = true
			fmt.Fprintf(&b, `<Default Extension=%q ContentType=%q/>`, ext[1:], ct)
		}
	}

	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func (d *Deck) presentationXML() string {
	cx := int64(d.opts.Width) * emuPerPixel
	cy := int64(d.opts.Height) * emuPerPixel

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation ` + xmlns + `>`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, cx, cy)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (d *Deck) presentationRelsXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+2, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func slideRelsXML(s slide, n int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if s.imagePath != "" {
		fmt.Fprintf(&b, `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d%s"/>`, n, strings.ToLower(filepath.Ext(s.imagePath)))
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func (d *Deck) slideXML(s slide) (string, error) {
	cx := int64(d.opts.Width) * emuPerPixel
	cy := int64(d.opts.Height) * emuPerPixel

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld ` + xmlns + `><p:cSld><p:spTree>`)
	b.WriteString(emptySpTree)

	// Background rectangle, always painted first.
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="2" name="Background"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:ln><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln></p:spPr><p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`,
		cx, cy, s.fill, s.fill)

	if s.imagePath != "" {
		imgW, imgH, err := media.Dimensions(s.imagePath)
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", s.imagePath, err)
		}
		offX, offY, extX, extY := fitRect(imgW, imgH, d.opts.Width, d.opts.Height)
		fmt.Fprintf(&b, `<p:pic><p:nvPicPr><p:cNvPr id="3" name="Background Image"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
			offX, offY, extX, extY)
	}

	if s.text != "" {
		d.writeTextBox(&b, s, cx, cy)
	}

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String(), nil
}

func (d *Deck) writeTextBox(b *strings.Builder, s slide, canvasCX, canvasCY int64) {
	var offX, offY, extX, extY int64
	if s.rect != nil {
		offX = int64(s.rect.X) * emuPerPixel
		offY = int64(s.rect.Y) * emuPerPixel
		extX = int64(s.rect.Width) * emuPerPixel
		extY = int64(s.rect.Height) * emuPerPixel
	} else {
		// Default box: half an inch in from each side, below the top margin.
		offX = 457200
		offY = int64(d.opts.TopMargin) * emuPerPoint
		extX = canvasCX - 914400
		extY = canvasCY - offY
	}

	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="4" name="Text"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`,
		offX, offY, extX, extY)

	// Text frame margins match the authoring tool: zero except a small
	// bottom inset.
	b.WriteString(`<p:txBody><a:bodyPr wrap="square" lIns="0" tIns="0" rIns="0" bIns="73152"/><a:lstStyle/>`)
	fmt.Fprintf(b, `<a:p><a:pPr algn="%s"/>`, s.align)

	rPr := d.runProperties(s)
	for i, line := range strings.Split(s.text, "\n") {
		if i > 0 {
			fmt.Fprintf(b, `<a:br>%s</a:br>`, rPr)
		}
		fmt.Fprintf(b, `<a:r>%s<a:t>%s</a:t></a:r>`, rPr, escapeXML(line))
	}
	b.WriteString(`</a:p></p:txBody></p:sp>`)
}

func (d *Deck) runProperties(s slide) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<a:rPr lang="en-US" sz="%d"`, s.fontSize*100)
	if s.bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0">`)
	fmt.Fprintf(&b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, s.fontColor)
	if d.opts.Shadow.Enabled {
		blurRad, dist, dir := shadowGeometry(*d.opts.Shadow)
		fmt.Fprintf(&b, `<a:effectLst><a:outerShdw blurRad="%d" dist="%d" dir="%d"><a:srgbClr val="000000"><a:alpha val="60000"/></a:srgbClr></a:outerShdw></a:effectLst>`,
			blurRad, dist, dir)
	}
	fmt.Fprintf(&b, `<a:latin typeface="%s"/>`, escapeXML(s.fontFamily))
	b.WriteString(`</a:rPr>`)
	return b.String()
}

func escapeXML(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
