// Package ui provides the rendering components of the studydesk TUI.
//
// # Layout
//
// Every page shares a header and footer. The Applications and
// StudentApplication pages split the body like this:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │  Detail                           │
//	│   Sidebar       ├───────────────────────────────────┤
//	│   (1/3 width)   │  Chat                             │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The Documents, StudentDashboard and StudentProfile pages give the whole
// body to DocumentsView, DashboardView and ProfileView respectively.
//
// # Components
//
// ViewContext is the single source of layout sizes. Components never
// compute their own share of the terminal.
//
// Components only render. The view-models in internal/applications,
// internal/chat, internal/documents, internal/dashboard and internal/profile
// own state and selection; the app copies their snapshots in before each
// frame.
//
// Modal hosts one state from the modals package at a time and centres it
// over the page.
//
// # Styles
//
// styles.go declares the style variables and theme.go fills them from the
// active Theme. Status badges take their background from the application's
// colour and their text colour from format.Contrast.
package ui
