package rig

// Dialogs tracks which dialog is open: Idle -> Composing -> Saved/Cancelled
// -> Idle, per dialog kind. The flags are independent; callers are expected
// to keep at most one dialog open at a time (the controller does not enforce
// mutual exclusion).
type Dialogs struct {
	createViewOpen bool
	editViewOpen   bool
	editViewID     string
	projectOpen    bool
}

func (d *Dialogs) OpenCreateView()      { d.createViewOpen = true }
func (d *Dialogs) CloseCreateView()     { d.createViewOpen = false }
func (d *Dialogs) CreateViewOpen() bool { return d.createViewOpen }

// OpenEditView records which view the edit dialog targets.
func (d *Dialogs) OpenEditView(id string) {
	d.editViewOpen = true
	d.editViewID = id
}

func (d *Dialogs) CloseEditView() {
	d.editViewOpen = false
	d.editViewID = "0"
}

func (d *Dialogs) EditViewOpen() bool { return d.editViewOpen }
func (d *Dialogs) EditViewID() string { return d.editViewID }

func (d *Dialogs) OpenProject()      { d.projectOpen = true }
func (d *Dialogs) CloseProject()     { d.projectOpen = false }
func (d *Dialogs) ProjectOpen() bool { return d.projectOpen }
