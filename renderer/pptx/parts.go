package pptxrenderer

import "text/template"

const (
	nsA = `http://schemas.openxmlformats.org/drawingml/2006/main`
	nsR = `http://schemas.openxmlformats.org/officeDocument/2006/relationships`
	nsP = `http://schemas.openxmlformats.org/presentationml/2006/main`

	relBase = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	rootNS    = `xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"`

	groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`
	clrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" ` +
		`accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`
)

var templates = template.Must(template.New("pptx").Parse(`
{{define "contentTypes"}}` + xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` +
	`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>` +
	`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` +
	`{{range .Slides}}<Override PartName="/ppt/slides/slide{{.Index}}.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>` +
	`{{if .Notes}}<Override PartName="/ppt/notesSlides/notesSlide{{.Index}}.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"/>{{end}}{{end}}` +
	`{{if .HasNotes}}<Override PartName="/ppt/notesMasters/notesMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"/>` +
	`<Override PartName="/ppt/theme/theme2.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>{{end}}` +
	`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
	`<Override PartName="/ppt/presProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"/>` +
	`<Override PartName="/ppt/viewProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"/>` +
	`<Override PartName="/ppt/tableStyles.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>{{end}}

{{define "rels"}}` + xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`{{range .}}<Relationship Id="{{.ID}}" Type="{{.Type}}" Target="{{.Target}}"/>{{end}}</Relationships>{{end}}

{{define "core"}}` + xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
	`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
	`<dc:title>{{.Title}}</dc:title><dc:subject>{{.Subject}}</dc:subject><dc:creator>{{.Author}}</dc:creator>` +
	`<cp:keywords>{{.Keywords}}</cp:keywords>` +
	`<dcterms:created xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:created>` +
	`<dcterms:modified xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:modified></cp:coreProperties>{{end}}

{{define "app"}}` + xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
	`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
	`<Application>{{.Creator}}</Application><Slides>{{len .Slides}}</Slides><Notes>{{.NoteCount}}</Notes></Properties>{{end}}

{{define "presentation"}}` + xmlHeader + `<p:presentation ` + rootNS + ` saveSubsetFonts="1">` +
	`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
	`{{if .HasNotes}}<p:notesMasterIdLst><p:notesMasterId r:id="{{.NotesMasterRID}}"/></p:notesMasterIdLst>{{end}}` +
	`<p:sldIdLst>{{range .Slides}}<p:sldId id="{{.SlideID}}" r:id="{{.RID}}"/>{{end}}</p:sldIdLst>` +
	`<p:sldSz cx="{{.Width}}" cy="{{.Height}}"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>{{end}}

{{define "master"}}` + xmlHeader + `<p:sldMaster ` + rootNS + `><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>` +
	`<p:spTree>` + groupProps + `</p:spTree></p:cSld>` + clrMap +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`<p:txStyles><p:titleStyle><a:lvl1pPr><a:defRPr sz="4400"/></a:lvl1pPr></p:titleStyle>` +
	`<p:bodyStyle><a:lvl1pPr><a:defRPr sz="1800"/></a:lvl1pPr></p:bodyStyle>` +
	`<p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"/></a:lvl1pPr></p:otherStyle></p:txStyles></p:sldMaster>{{end}}

{{define "layout"}}` + xmlHeader + `<p:sldLayout ` + rootNS + ` type="blank" preserve="1"><p:cSld name="Blank">` +
	`<p:spTree>` + groupProps + `</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>{{end}}

{{define "notesMaster"}}` + xmlHeader + `<p:notesMaster ` + rootNS + `><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>` +
	`<p:spTree>` + groupProps + `</p:spTree></p:cSld>` + clrMap + `</p:notesMaster>{{end}}

{{define "slide"}}` + xmlHeader + `<p:sld ` + rootNS + `><p:cSld>` +
	`{{if .Background}}<p:bg><p:bgPr><a:solidFill><a:srgbClr val="{{.Background}}"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>{{end}}` +
	`<p:spTree>` + groupProps + `{{range .Shapes}}{{template "shape" .}}{{end}}</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>{{end}}

{{define "shape"}}{{if eq .Geom "line"}}<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="{{.ID}}" name="{{.Name}}"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>` +
	`<p:spPr><a:xfrm{{if .FlipH}} flipH="1"{{end}}{{if .FlipV}} flipV="1"{{end}}><a:off x="{{.X}}" y="{{.Y}}"/><a:ext cx="{{.CX}}" cy="{{.CY}}"/></a:xfrm>` +
	`<a:prstGeom prst="line"><a:avLst/></a:prstGeom><a:ln w="{{.StrokeW}}"><a:solidFill><a:srgbClr val="{{.Stroke}}"/></a:solidFill></a:ln></p:spPr></p:cxnSp>` +
	`{{else}}<p:sp><p:nvSpPr><p:cNvPr id="{{.ID}}" name="{{.Name}}"/><p:cNvSpPr{{if .Paras}} txBox="1"{{end}}/><p:nvPr/></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="{{.X}}" y="{{.Y}}"/><a:ext cx="{{.CX}}" cy="{{.CY}}"/></a:xfrm>` +
	`<a:prstGeom prst="{{.Geom}}">{{if .Adj}}<a:avLst><a:gd name="adj" fmla="val {{.Adj}}"/></a:avLst>{{else}}<a:avLst/>{{end}}</a:prstGeom>` +
	`{{if .Fill}}<a:solidFill><a:srgbClr val="{{.Fill}}"/></a:solidFill>{{else}}<a:noFill/>{{end}}` +
	`{{if .Stroke}}<a:ln w="{{.StrokeW}}"><a:solidFill><a:srgbClr val="{{.Stroke}}"/></a:solidFill></a:ln>{{else}}<a:ln><a:noFill/></a:ln>{{end}}</p:spPr>` +
	`{{if .Paras}}<p:txBody><a:bodyPr wrap="square" lIns="0" tIns="0" rIns="0" bIns="0" rtlCol="0"><a:noAutofit/></a:bodyPr><a:lstStyle/>` +
	`{{range .Paras}}<a:p><a:pPr algn="{{.Align}}"/><a:r><a:rPr lang="en-US" sz="{{.Size}}"{{if .Bold}} b="1"{{end}}{{if .Italic}} i="1"{{end}} dirty="0">` +
	`<a:solidFill><a:srgbClr val="{{.Color}}"/></a:solidFill><a:latin typeface="{{.Typeface}}"/></a:rPr><a:t>{{.Text}}</a:t></a:r></a:p>{{end}}</p:txBody>{{end}}</p:sp>{{end}}{{end}}

{{define "notes"}}` + xmlHeader + `<p:notes ` + rootNS + `><p:cSld><p:spTree>` + groupProps +
	`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/><p:cNvSpPr><a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/></p:cNvSpPr>` +
	`<p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>` +
	`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>` +
	`<p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>` +
	`{{range .}}<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>{{.}}</a:t></a:r></a:p>{{end}}</p:txBody></p:sp>` +
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>{{end}}
`))

const presProps = xmlHeader + `<p:presentationPr ` + rootNS + `/>`

const viewProps = xmlHeader + `<p:viewPr ` + rootNS + `><p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`

const tableStyles = xmlHeader + `<a:tblStyleLst xmlns:a="` + nsA + `" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`

// theme is the minimal complete DrawingML theme shared by the slide and notes masters.
const theme = xmlHeader + `<a:theme xmlns:a="` + nsA + `" name="Lesson"><a:themeElements>` +
	`<a:clrScheme name="Lesson">` +
	`<a:dk1><a:srgbClr val="1F2937"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="0F172A"/></a:dk2><a:lt2><a:srgbClr val="F8FAFC"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="2563EB"/></a:accent1><a:accent2><a:srgbClr val="059669"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="D97706"/></a:accent3><a:accent4><a:srgbClr val="DC2626"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="7C3AED"/></a:accent5><a:accent6><a:srgbClr val="0891B2"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="2563EB"/></a:hlink><a:folHlink><a:srgbClr val="7C3AED"/></a:folHlink></a:clrScheme>` +
	`<a:fontScheme name="Lesson"><a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme>` +
	`<a:fmtScheme name="Lesson"><a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:fillStyleLst><a:lnStyleLst>` +
	`<a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst><a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst><a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`
