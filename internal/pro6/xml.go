package pro6

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"

	"chorale/internal/identity"
)

// Fixed document identity attributes. The player rejects documents whose
// build and version numbers it does not recognize.
const (
	buildNumber   = "100991749"
	versionNumber = "600"
)

// WriteError reports a document that could not be serialized or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write document %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// Stage classifies the error for engine reporting.
func (e *WriteError) Stage() string { return "serialization" }

// Marshal serializes the document to flat XML without a declaration, the
// form the player writes itself.
func Marshal(d *Document) ([]byte, error) {
	return xml.Marshal(toXML(d))
}

// WriteFile serializes the document to path.
func WriteFile(d *Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// The xml* types mirror the wire format exactly. Field order is attribute
// order on the wire; do not reorder.

type xmlDocument struct {
	XMLName xml.Name `xml:"RVPresentationDocument"`

	CCLIArtistCredits      string `xml:"CCLIArtistCredits,attr"`
	CCLIAuthor             string `xml:"CCLIAuthor,attr"`
	CCLICopyrightYear      string `xml:"CCLICopyrightYear,attr"`
	CCLIDisplay            string `xml:"CCLIDisplay,attr"`
	CCLIPublisher          string `xml:"CCLIPublisher,attr"`
	CCLISongNumber         string `xml:"CCLISongNumber,attr"`
	CCLISongTitle          string `xml:"CCLISongTitle,attr"`
	BackgroundColor        string `xml:"backgroundColor,attr"`
	BuildNumber            string `xml:"buildNumber,attr"`
	Category               string `xml:"category,attr"`
	ChordChartPath         string `xml:"chordChartPath,attr"`
	DocType                string `xml:"docType,attr"`
	DrawingBackgroundColor string `xml:"drawingBackgroundColor,attr"`
	Height                 string `xml:"height,attr"`
	LastDateUsed           string `xml:"lastDateUsed,attr"`
	Notes                  string `xml:"notes,attr"`
	OS                     string `xml:"os,attr"`
	ResourcesDirectory     string `xml:"resourcesDirectory,attr"`
	SelectedArrangementID  string `xml:"selectedArrangementID,attr"`
	UsedCount              string `xml:"usedCount,attr"`
	UUID                   string `xml:"uuid,attr"`
	VersionNumber          string `xml:"versionNumber,attr"`
	Width                  string `xml:"width,attr"`

	Timeline     xmlTimeline
	Groups       xmlGroups
	Arrangements xmlArrangements
}

type xmlTimeline struct {
	XMLName xml.Name `xml:"RVTimeline"`

	Duration                string `xml:"duration,attr"`
	Loop                    string `xml:"loop,attr"`
	PlayBackRate            string `xml:"playBackRate,attr"`
	IvarName                string `xml:"rvXMLIvarName,attr"`
	SelectedMediaTrackIndex string `xml:"selectedMediaTrackIndex,attr"`
	TimeOffset              string `xml:"timeOffset,attr"`

	TimeCues    xmlEmptyArray
	MediaTracks xmlEmptyArray
}

type xmlEmptyArray struct {
	XMLName  xml.Name `xml:"array"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
}

type xmlGroups struct {
	XMLName  xml.Name `xml:"array"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	Groups   []xmlGrouping
}

type xmlGrouping struct {
	XMLName xml.Name `xml:"RVSlideGrouping"`

	Color string `xml:"color,attr"`
	Name  string `xml:"name,attr"`
	UUID  string `xml:"uuid,attr"`

	Slides xmlSlides
}

type xmlSlides struct {
	XMLName  xml.Name `xml:"array"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	Slides   []xmlSlide
}

type xmlSlide struct {
	XMLName xml.Name `xml:"RVDisplaySlide"`

	UUID                   string `xml:"UUID,attr"`
	BackgroundColor        string `xml:"backgroundColor,attr"`
	ChordChartPath         string `xml:"chordChartPath,attr"`
	DrawingBackgroundColor string `xml:"drawingBackgroundColor,attr"`
	Enabled                string `xml:"enabled,attr"`
	HighlightColor         string `xml:"highlightColor,attr"`
	HotKey                 string `xml:"hotKey,attr"`
	Label                  string `xml:"label,attr"`
	Notes                  string `xml:"notes,attr"`
	SocialItemCount        string `xml:"socialItemCount,attr"`

	Cues            xmlEmptyArray
	MediaCue        *xmlMediaCue
	DisplayElements xmlDisplayElements
}

type xmlMediaCue struct {
	XMLName xml.Name `xml:"RVMediaCue"`

	UUID        string `xml:"UUID,attr"`
	ActionType  string `xml:"actionType,attr"`
	Alignment   string `xml:"alignment,attr"`
	Behavior    string `xml:"behavior,attr"`
	DateAdded   string `xml:"dateAdded,attr"`
	DelayTime   string `xml:"delayTime,attr"`
	DisplayName string `xml:"displayName,attr"`
	Enabled     string `xml:"enabled,attr"`
	NextCueUUID string `xml:"nextCueUUID,attr"`
	IvarName    string `xml:"rvXMLIvarName,attr"`
	Tags        string `xml:"tags,attr"`
	TimeStamp   string `xml:"timeStamp,attr"`

	Image *xmlImageElement
	Video *xmlVideoElement
}

type xmlImageElement struct {
	XMLName xml.Name `xml:"RVImageElement"`

	UUID                string `xml:"UUID,attr"`
	BezelRadius         string `xml:"bezelRadius,attr"`
	DisplayDelay        string `xml:"displayDelay,attr"`
	DisplayName         string `xml:"displayName,attr"`
	DrawingFill         string `xml:"drawingFill,attr"`
	DrawingShadow       string `xml:"drawingShadow,attr"`
	DrawingStroke       string `xml:"drawingStroke,attr"`
	FillColor           string `xml:"fillColor,attr"`
	FlippedHorizontally string `xml:"flippedHorizontally,attr"`
	FlippedVertically   string `xml:"flippedVertically,attr"`
	Format              string `xml:"format,attr"`
	FromTemplate        string `xml:"fromTemplate,attr"`
	ImageOffset         string `xml:"imageOffset,attr"`
	Locked              string `xml:"locked,attr"`
	ManufactureName     string `xml:"manufactureName,attr"`
	ManufactureURL      string `xml:"manufactureURL,attr"`
	Opacity             string `xml:"opacity,attr"`
	Persistent          string `xml:"persistent,attr"`
	Rotation            string `xml:"rotation,attr"`
	IvarName            string `xml:"rvXMLIvarName,attr"`
	ScaleBehavior       string `xml:"scaleBehavior,attr"`
	ScaleSize           string `xml:"scaleSize,attr"`
	Source              string `xml:"source,attr"`
	TypeID              string `xml:"typeID,attr"`

	Position xmlRect
	Shadow   xmlShadow
	Stroke   xmlStroke
}

type xmlVideoElement struct {
	XMLName xml.Name `xml:"RVVideoElement"`

	UUID                string `xml:"UUID,attr"`
	AudioVolume         string `xml:"audioVolume,attr"`
	BezelRadius         string `xml:"bezelRadius,attr"`
	DisplayDelay        string `xml:"displayDelay,attr"`
	DisplayName         string `xml:"displayName,attr"`
	DrawingFill         string `xml:"drawingFill,attr"`
	DrawingShadow       string `xml:"drawingShadow,attr"`
	DrawingStroke       string `xml:"drawingStroke,attr"`
	EndPoint            string `xml:"endPoint,attr"`
	FieldType           string `xml:"fieldType,attr"`
	FillColor           string `xml:"fillColor,attr"`
	FlippedHorizontally string `xml:"flippedHorizontally,attr"`
	FlippedVertically   string `xml:"flippedVertically,attr"`
	Format              string `xml:"format,attr"`
	FrameRate           string `xml:"frameRate,attr"`
	FromTemplate        string `xml:"fromTemplate,attr"`
	ImageOffset         string `xml:"imageOffset,attr"`
	InPoint             string `xml:"inPoint,attr"`
	Locked              string `xml:"locked,attr"`
	ManufactureName     string `xml:"manufactureName,attr"`
	ManufactureURL      string `xml:"manufactureURL,attr"`
	NaturalSize         string `xml:"naturalSize,attr"`
	Opacity             string `xml:"opacity,attr"`
	OutPoint            string `xml:"outPoint,attr"`
	Persistent          string `xml:"persistent,attr"`
	PlayRate            string `xml:"playRate,attr"`
	PlaybackBehavior    string `xml:"playbackBehavior,attr"`
	Rotation            string `xml:"rotation,attr"`
	IvarName            string `xml:"rvXMLIvarName,attr"`
	ScaleBehavior       string `xml:"scaleBehavior,attr"`
	ScaleSize           string `xml:"scaleSize,attr"`
	Source              string `xml:"source,attr"`
	TimeScale           string `xml:"timeScale,attr"`
	TypeID              string `xml:"typeID,attr"`

	Position xmlRect
	Shadow   xmlShadow
	Stroke   xmlStroke
}

type xmlDisplayElements struct {
	XMLName  xml.Name `xml:"array"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	Texts    []xmlTextElement
}

type xmlTextElement struct {
	XMLName xml.Name `xml:"RVTextElement"`

	UUID                     string `xml:"UUID,attr"`
	AdditionalLineFillHeight string `xml:"additionalLineFillHeight,attr"`
	AdjustsHeightToFit       string `xml:"adjustsHeightToFit,attr"`
	BezelRadius              string `xml:"bezelRadius,attr"`
	DisplayDelay             string `xml:"displayDelay,attr"`
	DisplayName              string `xml:"displayName,attr"`
	DrawLineBackground       string `xml:"drawLineBackground,attr"`
	DrawingFill              string `xml:"drawingFill,attr"`
	DrawingShadow            string `xml:"drawingShadow,attr"`
	DrawingStroke            string `xml:"drawingStroke,attr"`
	FillColor                string `xml:"fillColor,attr"`
	FromTemplate             string `xml:"fromTemplate,attr"`
	LineBackgroundType       string `xml:"lineBackgroundType,attr"`
	LineFillVerticalOffset   string `xml:"lineFillVerticalOffset,attr"`
	Locked                   string `xml:"locked,attr"`
	Opacity                  string `xml:"opacity,attr"`
	Persistent               string `xml:"persistent,attr"`
	RevealType               string `xml:"revealType,attr"`
	Rotation                 string `xml:"rotation,attr"`
	Source                   string `xml:"source,attr"`
	RemoveLineReturns        string `xml:"textSourceRemoveLineReturnsOption,attr"`
	TypeID                   string `xml:"typeID,attr"`
	UseAllCaps               string `xml:"useAllCaps,attr"`
	VerticalAlignment        string `xml:"verticalAlignment,attr"`

	Position xmlRect
	Shadow   xmlShadow
	Stroke   xmlStroke
	RTFData  xmlNSStringIvar
}

type xmlRect struct {
	XMLName  xml.Name `xml:"RVRect3D"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	Value    string   `xml:",chardata"`
}

type xmlShadow struct {
	XMLName  xml.Name `xml:"shadow"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	Value    string   `xml:",chardata"`
}

type xmlStroke struct {
	XMLName  xml.Name `xml:"dictionary"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	Color    xmlStrokeColor
	Width    xmlStrokeWidth
}

type xmlStrokeColor struct {
	XMLName xml.Name `xml:"NSColor"`
	Key     string   `xml:"rvXMLDictionaryKey,attr"`
	Value   string   `xml:",chardata"`
}

type xmlStrokeWidth struct {
	XMLName xml.Name `xml:"NSNumber"`
	Hint    string   `xml:"hint,attr"`
	Key     string   `xml:"rvXMLDictionaryKey,attr"`
	Value   string   `xml:",chardata"`
}

type xmlNSStringIvar struct {
	XMLName  xml.Name `xml:"NSString"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	Value    string   `xml:",chardata"`
}

type xmlArrangements struct {
	XMLName      xml.Name `xml:"array"`
	IvarName     string   `xml:"rvXMLIvarName,attr"`
	Arrangements []xmlArrangement
}

type xmlArrangement struct {
	XMLName xml.Name `xml:"RVSongArrangement"`

	Color string `xml:"color,attr"`
	Name  string `xml:"name,attr"`
	UUID  string `xml:"uuid,attr"`

	GroupIDs xmlGroupIDs
}

type xmlGroupIDs struct {
	XMLName  xml.Name `xml:"array"`
	IvarName string   `xml:"rvXMLIvarName,attr"`
	IDs      []xmlNSString
}

type xmlNSString struct {
	XMLName xml.Name `xml:"NSString"`
	Value   string   `xml:",chardata"`
}

func toXML(d *Document) *xmlDocument {
	out := &xmlDocument{
		CCLIDisplay:            "false",
		CCLISongTitle:          d.Title,
		BackgroundColor:        "0 0 0 0",
		BuildNumber:            buildNumber,
		Category:               "Presentation",
		DocType:                "0",
		DrawingBackgroundColor: "false",
		Height:                 strconv.Itoa(d.Height),
		OS:                     "2",
		UsedCount:              "0",
		UUID:                   d.UUID,
		VersionNumber:          versionNumber,
		Width:                  strconv.Itoa(d.Width),
		Timeline: xmlTimeline{
			Duration:                "0.000000",
			Loop:                    "false",
			PlayBackRate:            "1.000000",
			IvarName:                "timeline",
			SelectedMediaTrackIndex: "0",
			TimeOffset:              "0.000000",
			TimeCues:                xmlEmptyArray{IvarName: "timeCues"},
			MediaTracks:             xmlEmptyArray{IvarName: "mediaTracks"},
		},
		Groups:       xmlGroups{IvarName: "groups"},
		Arrangements: xmlArrangements{IvarName: "arrangements"},
	}

	for _, group := range d.Groups {
		xg := xmlGrouping{
			Color:  group.Color,
			Name:   group.Name,
			UUID:   group.UUID,
			Slides: xmlSlides{IvarName: "slides"},
		}
		for _, slide := range group.Slides {
			xg.Slides.Slides = append(xg.Slides.Slides, slideToXML(slide))
		}
		out.Groups.Groups = append(out.Groups.Groups, xg)
	}

	if d.Arrangement != nil {
		xa := xmlArrangement{
			Color:    "0 0 0 0",
			Name:     "arrangement1",
			UUID:     d.Arrangement.UUID,
			GroupIDs: xmlGroupIDs{IvarName: "groupIDs"},
		}
		for _, id := range d.Arrangement.GroupIDs {
			xa.GroupIDs.IDs = append(xa.GroupIDs.IDs, xmlNSString{Value: id})
		}
		out.Arrangements.Arrangements = append(out.Arrangements.Arrangements, xa)
		out.SelectedArrangementID = d.Arrangement.UUID
	}
	return out
}

func slideToXML(s Slide) xmlSlide {
	out := xmlSlide{
		UUID:                   s.UUID,
		BackgroundColor:        "0 0 0 1",
		DrawingBackgroundColor: "false",
		Enabled:                "true",
		HighlightColor:         "1 1 1 0",
		Label:                  s.Label,
		SocialItemCount:        "0",
		Cues:                   xmlEmptyArray{IvarName: "cues"},
		DisplayElements:        xmlDisplayElements{IvarName: "displayElements"},
	}
	if s.Fill != "" {
		out.BackgroundColor = s.Fill
		out.DrawingBackgroundColor = "true"
	}
	if s.Background != nil {
		out.MediaCue = mediaCueToXML(s.Background)
	}
	if s.Text != nil {
		out.SocialItemCount = "1"
		out.DisplayElements.Texts = append(out.DisplayElements.Texts, textToXML(s.Text))
	}
	return out
}

func mediaCueToXML(cue *MediaCue) *xmlMediaCue {
	out := &xmlMediaCue{
		UUID:        cue.CueUUID,
		ActionType:  "0",
		Alignment:   "4",
		Behavior:    cue.Behavior,
		DelayTime:   "0.000000",
		DisplayName: cue.DisplayName,
		Enabled:     "true",
		NextCueUUID: identity.Zero,
		IvarName:    "backgroundMediaCue",
		TimeStamp:   "0.000000",
	}

	shadow := xmlShadow{IvarName: "shadow", Value: "0.000000|0 0 0 0.3333333432674408|{4, -4}"}
	stroke := xmlStroke{
		IvarName: "stroke",
		Color:    xmlStrokeColor{Key: "RVShapeElementStrokeColorKey", Value: "0 0 0 1"},
		Width:    xmlStrokeWidth{Hint: "float", Key: "RVShapeElementStrokeWidthKey", Value: "1.000000"},
	}

	if cue.IsVideo {
		out.Video = &xmlVideoElement{
			UUID:                cue.ElementUUID,
			AudioVolume:         "1.000000",
			BezelRadius:         "0.000000",
			DisplayDelay:        "0.000000",
			DisplayName:         "VideoElement",
			DrawingFill:         "false",
			DrawingShadow:       "false",
			DrawingStroke:       "false",
			EndPoint:            "30030",
			FieldType:           "0",
			FillColor:           "0 0 0 0",
			FlippedHorizontally: "false",
			FlippedVertically:   "false",
			Format:              cue.Format,
			FrameRate:           "29.970030",
			FromTemplate:        "false",
			ImageOffset:         "{0, 0}",
			InPoint:             "0",
			Locked:              "false",
			NaturalSize:         "{1920, 1080}",
			Opacity:             "1.000000",
			OutPoint:            "30030",
			Persistent:          "false",
			PlayRate:            "1.000000",
			PlaybackBehavior:    "1",
			Rotation:            "0.000000",
			IvarName:            "element",
			ScaleBehavior:       "0",
			ScaleSize:           "{1, 1}",
			Source:              cue.Source,
			TimeScale:           "1000",
			TypeID:              "0",
			Position:            xmlRect{IvarName: "position", Value: "{0 0 0 1920 1080}"},
			Shadow:              shadow,
			Stroke:              stroke,
		}
		return out
	}

	out.Image = &xmlImageElement{
		UUID:                cue.ElementUUID,
		BezelRadius:         "0.000000",
		DisplayDelay:        "0.000000",
		DisplayName:         "ImageElement",
		DrawingFill:         "false",
		DrawingShadow:       "false",
		DrawingStroke:       "false",
		FillColor:           "0 0 0 0",
		FlippedHorizontally: "false",
		FlippedVertically:   "false",
		Format:              cue.Format,
		FromTemplate:        "false",
		ImageOffset:         "{0, 0}",
		Locked:              "false",
		Opacity:             "1.000000",
		Persistent:          "false",
		Rotation:            "0.000000",
		IvarName:            "element",
		ScaleBehavior:       "0",
		ScaleSize:           "{1, 1}",
		Source:              cue.Source,
		TypeID:              "0",
		Position:            xmlRect{IvarName: "position", Value: "{0 0 0 0 0}"},
		Shadow:              shadow,
		Stroke:              stroke,
	}
	return out
}

func textToXML(t *TextBlock) xmlTextElement {
	return xmlTextElement{
		UUID:                     t.ElementUUID,
		AdditionalLineFillHeight: "0.000000",
		AdjustsHeightToFit:       "false",
		BezelRadius:              "0.000000",
		DisplayDelay:             "0.000000",
		DisplayName:              "TextElement",
		DrawLineBackground:       "false",
		DrawingFill:              "false",
		DrawingShadow:            "false",
		DrawingStroke:            "false",
		FillColor:                "1 1 1 0",
		FromTemplate:             "false",
		LineBackgroundType:       "0",
		LineFillVerticalOffset:   "0.000000",
		Locked:                   "false",
		Opacity:                  "1.000000",
		Persistent:               "false",
		RevealType:               "0",
		Rotation:                 "0.000000",
		RemoveLineReturns:        "false",
		TypeID:                   "0",
		UseAllCaps:               "false",
		VerticalAlignment:        t.Vertical,
		Position:                 xmlRect{IvarName: "position", Value: t.Position},
		Shadow:                   xmlShadow{IvarName: "shadow", Value: "0.000000|0 0 0 0.3294117748737335|{4, -4}"},
		Stroke: xmlStroke{
			IvarName: "stroke",
			Color:    xmlStrokeColor{Key: "RVShapeElementStrokeColorKey", Value: "0 0 0 1"},
			Width:    xmlStrokeWidth{Hint: "double", Key: "RVShapeElementStrokeWidthKey", Value: "0.000000"},
		},
		RTFData: xmlNSStringIvar{IvarName: "RTFData", Value: t.Data},
	}
}
