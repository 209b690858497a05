package model

import "encoding/json"

// ViewType is the embedding surface an extension view simulates.
type ViewType string

const (
	ViewTypePanel        ViewType = "panel"
	ViewTypeComponent    ViewType = "component"
	ViewTypeMobile       ViewType = "mobile"
	ViewTypeVideoOverlay ViewType = "video_overlay"
)

// ViewMode is the extension's operating context for a given view.
type ViewMode string

const (
	ViewModeViewer    ViewMode = "viewer"
	ViewModeConfig    ViewMode = "config"
	ViewModeDashboard ViewMode = "dashboard"
)

// ViewerRole names the simulated identity behind a view. It becomes the
// "role" claim of the view's signed credential.
type ViewerRole string

const (
	RoleBroadcaster ViewerRole = "broadcaster"
	RoleViewer      ViewerRole = "viewer"
	RoleExternal    ViewerRole = "external"
)

type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// IdentityOption is the user's linked/unlinked selection in the view dialog.
// Config and dashboard views are always linked regardless of this choice.
type IdentityOption string

const (
	IdentityLinked   IdentityOption = "linked"
	IdentityUnlinked IdentityOption = "unlinked"
)

type FrameSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SignedIdentity is the credential issued for a view at creation time.
// It is never regenerated for an existing view.
type SignedIdentity struct {
	Credential string `json:"credential"`
	IsLinked   bool   `json:"isLinked"`
}

// ExtensionView is one simulated embedding of the extension. Identity, type,
// mode, role and linked are fixed at creation; only the geometry fields
// (x, y, orientation) may change afterwards.
type ExtensionView struct {
	ID          string         `json:"id"`
	Type        ViewType       `json:"type"`
	Mode        ViewMode       `json:"mode"`
	Role        ViewerRole     `json:"role"`
	Linked      bool           `json:"linked"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Orientation Orientation    `json:"orientation"`
	FrameSize   FrameSize      `json:"frameSize"`
	Identity    SignedIdentity `json:"identity"`
}

// Manifest is the extension manifest as fetched from the backend or pasted
// as JSON. Beyond the fields read here it is carried opaquely.
type Manifest struct {
	Name        string          `json:"name,omitempty"`
	Views       []ManifestView  `json:"views,omitempty"`
	BitsEnabled bool            `json:"bitsEnabled,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// ManifestView is a declared view template inside the manifest.
type ManifestView struct {
	Type      ViewType `json:"type"`
	ViewerURL string   `json:"viewerUrl,omitempty"`
	Height    int      `json:"height,omitempty"`
}

// ManifestResult is either a parsed manifest or the parse/fetch error text.
// The original rig stored the error string where the manifest would go; this
// keeps that user-visible behavior without overloading the manifest type.
type ManifestResult struct {
	Manifest *Manifest `json:"manifest,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func (r ManifestResult) OK() bool { return r.Error == "" && r.Manifest != nil }

func ManifestOK(m Manifest) ManifestResult  { return ManifestResult{Manifest: &m} }
func ManifestErr(msg string) ManifestResult { return ManifestResult{Error: msg} }

// ParseManifest parses hand-entered manifest JSON. A parse failure is not an
// error to the caller: the message becomes the (displayed) result.
func ParseManifest(text string) ManifestResult {
	var m Manifest
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return ManifestErr(err.Error())
	}
	m.Raw = json.RawMessage(text)
	return ManifestOK(m)
}

// Project binds a local or hosted extension (credentials, manifest, file
// paths) that simulated views run against.
type Project struct {
	IsLocal      bool           `json:"isLocal"`
	Name         string         `json:"name"`
	OwnerName    string         `json:"ownerName"`
	ClientID     string         `json:"clientId"`
	Secret       string         `json:"secret"`
	Version      string         `json:"version"`
	Manifest     ManifestResult `json:"manifest"`
	FrontendPath string         `json:"frontendPath,omitempty"`
	BackendPath  string         `json:"backendPath,omitempty"`
}

// Login is the persisted sign-in record ("rigLogin" key).
type Login struct {
	Login           string `json:"login"`
	AuthToken       string `json:"authToken"`
	ProfileImageURL string `json:"profileImageUrl"`
}
