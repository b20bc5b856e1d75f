// MockAdapter follows the mockgen layout for the Adapter interface in
// prober.go. Keep it in step with that interface by hand.

package device

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockAdapter is a mock of Adapter interface.
type MockAdapter struct {
	ctrl     *gomock.Controller
	recorder *MockAdapterMockRecorder
	isgomock struct{}
}

// MockAdapterMockRecorder is the mock recorder for MockAdapter.
type MockAdapterMockRecorder struct {
	mock *MockAdapter
}

// NewMockAdapter creates a new mock instance.
func NewMockAdapter(ctrl *gomock.Controller) *MockAdapter {
	mock := &MockAdapter{ctrl: ctrl}
	mock.recorder = &MockAdapterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAdapter) EXPECT() *MockAdapterMockRecorder {
	return m.recorder
}

// ExtensionNames mocks base method.
func (m *MockAdapter) ExtensionNames() ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExtensionNames")
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExtensionNames indicates an expected call of ExtensionNames.
func (mr *MockAdapterMockRecorder) ExtensionNames() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExtensionNames", reflect.TypeOf((*MockAdapter)(nil).ExtensionNames))
}

// Features mocks base method.
func (m *MockAdapter) Features() Features {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Features")
	ret0, _ := ret[0].(Features)
	return ret0
}

// Features indicates an expected call of Features.
func (mr *MockAdapterMockRecorder) Features() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Features", reflect.TypeOf((*MockAdapter)(nil).Features))
}

// PresentModes mocks base method.
func (m *MockAdapter) PresentModes() ([]PresentMode, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PresentModes")
	ret0, _ := ret[0].([]PresentMode)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PresentModes indicates an expected call of PresentModes.
func (mr *MockAdapterMockRecorder) PresentModes() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PresentModes", reflect.TypeOf((*MockAdapter)(nil).PresentModes))
}

// Properties mocks base method.
func (m *MockAdapter) Properties() (Properties, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Properties")
	ret0, _ := ret[0].(Properties)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Properties indicates an expected call of Properties.
func (mr *MockAdapterMockRecorder) Properties() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Properties", reflect.TypeOf((*MockAdapter)(nil).Properties))
}

// QueueFamilies mocks base method.
func (m *MockAdapter) QueueFamilies() []QueueFamily {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "QueueFamilies")
	ret0, _ := ret[0].([]QueueFamily)
	return ret0
}

// QueueFamilies indicates an expected call of QueueFamilies.
func (mr *MockAdapterMockRecorder) QueueFamilies() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "QueueFamilies", reflect.TypeOf((*MockAdapter)(nil).QueueFamilies))
}

// SupportsPresent mocks base method.
func (m *MockAdapter) SupportsPresent(family int) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SupportsPresent", family)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SupportsPresent indicates an expected call of SupportsPresent.
func (mr *MockAdapterMockRecorder) SupportsPresent(family any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SupportsPresent", reflect.TypeOf((*MockAdapter)(nil).SupportsPresent), family)
}

// SurfaceCapabilities mocks base method.
func (m *MockAdapter) SurfaceCapabilities() (SurfaceCapabilities, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SurfaceCapabilities")
	ret0, _ := ret[0].(SurfaceCapabilities)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SurfaceCapabilities indicates an expected call of SurfaceCapabilities.
func (mr *MockAdapterMockRecorder) SurfaceCapabilities() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SurfaceCapabilities", reflect.TypeOf((*MockAdapter)(nil).SurfaceCapabilities))
}

// SurfaceFormats mocks base method.
func (m *MockAdapter) SurfaceFormats() ([]SurfaceFormat, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SurfaceFormats")
	ret0, _ := ret[0].([]SurfaceFormat)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SurfaceFormats indicates an expected call of SurfaceFormats.
func (mr *MockAdapterMockRecorder) SurfaceFormats() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SurfaceFormats", reflect.TypeOf((*MockAdapter)(nil).SurfaceFormats))
}
