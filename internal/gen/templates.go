package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// parameterlessData feeds the "parameterless" template.
type parameterlessData struct {
	Access string
	Name   string
}

// initializeData feeds the "initialize" template.
type initializeData struct {
	Parameters string
	Body       string
}

// disposeData feeds the dispose templates.
type disposeData struct {
	// Disposable is the global name of the disposal interface.
	Disposable string
	// Member is the disposal member name.
	Member string
	// Access is the accessibility of an override.
	Access string
	// Owner is the type name with its type parameters.
	Owner            string
	Body             string
	SuppressFinalize bool
}

// finalizerData feeds the "finalizer" template.
type finalizerData struct {
	Name string
	Body string
}

// renderMember executes one member template. Surrounding blank lines are trimmed.
func renderMember(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := memberTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

var memberTemplates = template.Must(template.New("members").
	Funcs(template.FuncMap{"indent": indent}).
	Parse(memberTemplateText))

const memberTemplateText = `
{{define "guard" -}}
[global::System.ComponentModel.EditorBrowsable(global::System.ComponentModel.EditorBrowsableState.Never)]
private int {{.}};
{{- end}}

{{define "parameterless"}}
/// <summary>
/// Creates a new instance and completes its construction.
/// </summary>
{{.Access}} {{.Name}}()
{
    Initialize();
}
{{end}}

{{define "initialize"}}
{{template "guard" "__lifecycleIsInitialized"}}

/// <summary>
/// Completes construction of this class.
/// </summary>
/// <remarks>This method MUST be invoked in the constructor of this class.</remarks>
private void Initialize({{.Parameters}})
{
    if (global::System.Threading.Interlocked.Exchange(ref __lifecycleIsInitialized, 1) == 0)
    {
{{indent 2 .Body}}
    }
}
{{end}}

{{define "disposeSealed"}}
{{template "guard" "__lifecycleIsDisposed"}}

/// <inheritdoc cref="{{.Disposable}}.{{.Member}}"/>
public void {{.Member}}()
{
    if (global::System.Threading.Interlocked.Exchange(ref __lifecycleIsDisposed, 1) == 0)
    {
{{indent 2 .Body}}
    }
}
{{end}}

{{define "disposeUnsealed"}}
{{template "guard" "__lifecycleIsDisposed"}}

/// <summary>
/// Overridable method to perform application-defined tasks associated with freeing, releasing, or resetting resources.
/// </summary>
/// <param name="isDisposing">
/// True when invoked by <see cref="{{.Disposable}}.{{.Member}}"/> (release all resources),
/// false when invoked by the finalizer (release only unmanaged resources).
/// </param>
protected virtual void {{.Member}}(bool isDisposing)
{
    if (global::System.Threading.Interlocked.Exchange(ref __lifecycleIsDisposed, 1) == 0
        && isDisposing)
    {
{{indent 2 .Body}}
    }
}

/// <inheritdoc cref="{{.Disposable}}.{{.Member}}"/>
public void {{.Member}}()
{
    {{.Member}}(true);
{{- if .SuppressFinalize}}
    global::System.GC.SuppressFinalize(this);
{{- end}}
}
{{end}}

{{define "disposeOverride"}}
{{template "guard" "__lifecycleIsDisposed"}}

/// <inheritdoc />
{{.Access}} override void {{.Member}}(bool isDisposing)
{
    base.{{.Member}}(isDisposing);

    if (global::System.Threading.Interlocked.Exchange(ref __lifecycleIsDisposed, 1) == 0)
    {
{{indent 2 .Body}}
    }
}
{{end}}

{{define "disposeSimpleOverride"}}
{{template "guard" "__lifecycleIsDisposed"}}

/// <inheritdoc />
{{.Access}} override void {{.Member}}()
{
    base.{{.Member}}();

    if (global::System.Threading.Interlocked.Exchange(ref __lifecycleIsDisposed, 1) == 0)
    {
{{indent 2 .Body}}
    }
}
{{end}}

{{define "registration"}}
[global::System.ComponentModel.EditorBrowsable(global::System.ComponentModel.EditorBrowsableState.Never)]
private sealed class __LifecycleDisposables : {{.Disposable}}
{
    private readonly {{.Owner}} _parent;
    private int _isDisposed;

    public __LifecycleDisposables({{.Owner}} parent)
    {
        _parent = parent;
    }

    public void {{.Member}}()
    {
        if (global::System.Threading.Interlocked.Exchange(ref _isDisposed, 1) == 0)
        {
{{indent 3 .Body}}
        }
    }
}
{{end}}

{{define "finalizer"}}
/// <summary>
/// Runs the finalizer methods of this class.
/// </summary>
~{{.Name}}()
{
{{indent 1 .Body}}
}
{{end}}
`
