package tensorrt

import "fmt"

// LoadPluginLibrary loads a plugin shared library from a filesystem path
// into the process-global plugin registry, making its custom layer
// implementations available to engine deserialization.
func (r *Runtime) LoadPluginLibrary(path string) (PluginLibraryHandle, error) {
	if r.ptr == 0 {
		return 0, ErrClosed
	}
	handle := r.apiFuncs.LoadPluginLibrary(path)
	if handle == 0 {
		return 0, fmt.Errorf("load plugin library %q: %w", path, ErrPluginLoad)
	}
	return PluginLibraryHandle(handle), nil
}

// UnloadPluginLibrary deregisters a previously loaded plugin library.
//
// Passing a handle that was never returned by LoadPluginLibrary, or one
// that has already been unloaded, is undefined behavior in the native
// library; the bindings do not validate the handle.
func (r *Runtime) UnloadPluginLibrary(handle PluginLibraryHandle) {
	if r.ptr == 0 {
		return
	}
	r.apiFuncs.UnloadPluginLibrary(uintptr(handle))
}
