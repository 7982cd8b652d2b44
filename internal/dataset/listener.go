package dataset

// Listener is notified when a dataset is opened or its content changes.
type Listener interface {
	DatasetAdded(ds *Dataset)
	DatasetChanged(ds *Dataset)
}

// Notifier fans dataset events out to subscribed listeners in order.
type Notifier struct {
	listeners []Listener
}

// Subscribe registers a listener.
func (n *Notifier) Subscribe(l Listener) {
	n.listeners = append(n.listeners, l)
}

// Unsubscribe removes a listener.
func (n *Notifier) Unsubscribe(l Listener) {
	for i, cur := range n.listeners {
		if cur == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// NotifyAdded tells every listener that ds was opened.
func (n *Notifier) NotifyAdded(ds *Dataset) {
	for _, l := range n.listeners {
		l.DatasetAdded(ds)
	}
}

// NotifyChanged tells every listener that ds changed.
func (n *Notifier) NotifyChanged(ds *Dataset) {
	for _, l := range n.listeners {
		l.DatasetChanged(ds)
	}
}
