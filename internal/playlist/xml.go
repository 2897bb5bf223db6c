package playlist

import "encoding/xml"

// documentEntry is one playlist line item.
type documentEntry struct {
	uuid        string
	displayName string
	fileName    string
}

// The playlist descriptor points at the player's document directory, not at
// the bundle; the player relocates documents on import.
const documentDirPrefix = "~/Documents/ProPresenter6/"

type xmlPlaylistDocument struct {
	XMLName xml.Name `xml:"RVPlaylistDocument"`

	CCLIArtistCredits      string `xml:"CCLIArtistCredits,attr"`
	CCLIAuthor             string `xml:"CCLIAuthor,attr"`
	CCLICopyrightInfo      string `xml:"CCLICopyrightInfo,attr"`
	CCLIPublisher          string `xml:"CCLIPublisher,attr"`
	CCLISongNumber         string `xml:"CCLISongNumber,attr"`
	CCLISongTitle          string `xml:"CCLISongTitle,attr"`
	BackgroundColor        string `xml:"backgroundColor,attr"`
	CreatorCode            string `xml:"creatorCode,attr"`
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

	Array        struct{} `xml:"array"`
	Arrangements struct{} `xml:"arrangements"`
	Groups       struct{} `xml:"groups"`

	RootNode xmlPlaylistNode
}

type xmlPlaylistNode struct {
	XMLName xml.Name `xml:"RVPlaylistNode"`

	DisplayName string `xml:"displayName,attr"`
	Type        string `xml:"type,attr"`
	UUID        string `xml:"uuid,attr"`

	Cue   *xmlDocumentCue
	Nodes xmlPlaylistNodes
}

type xmlPlaylistNodes struct {
	XMLName xml.Name `xml:"playlistNodes"`
	Nodes   []xmlPlaylistNode
}

type xmlDocumentCue struct {
	XMLName xml.Name `xml:"RVDocumentCue"`

	UUID        string `xml:"UUID,attr"`
	DisplayName string `xml:"displayName,attr"`
	DelayTime   string `xml:"delayTime,attr"`
	TimeStamp   string `xml:"timeStamp,attr"`
	FilePath    string `xml:"filePath,attr"`

	Preset      struct{} `xml:"RVOPreset"`
	Array       struct{} `xml:"array"`
	DisplayTags struct{} `xml:"displayTags"`
	Flags       struct{} `xml:"flags"`
	Notes       struct{} `xml:"notes"`
}

// playlistXML renders the data.pro6pl descriptor, declaration included.
func playlistXML(name string, entries []documentEntry, newID func() string) ([]byte, error) {
	doc := xmlPlaylistDocument{
		BackgroundColor:        "0 0 0 1",
		CreatorCode:            "2",
		DocType:                "0",
		DrawingBackgroundColor: "false",
		Height:                 "768",
		OS:                     "2",
		UsedCount:              "0",
		UUID:                   newID(),
		VersionNumber:          "600",
		Width:                  "1024",
		RootNode: xmlPlaylistNode{
			DisplayName: name,
			Type:        "3",
			UUID:        newID(),
		},
	}

	for _, entry := range entries {
		doc.RootNode.Nodes.Nodes = append(doc.RootNode.Nodes.Nodes, xmlPlaylistNode{
			DisplayName: entry.displayName,
			Type:        "0",
			UUID:        entry.uuid,
			Cue: &xmlDocumentCue{
				UUID:        entry.uuid,
				DisplayName: entry.displayName,
				DelayTime:   "0",
				TimeStamp:   "0",
				FilePath:    documentDirPrefix + entry.fileName,
			},
		})
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
