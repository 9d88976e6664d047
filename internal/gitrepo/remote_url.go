package gitrepo

import (
	"fmt"
	"strings"
)

const (
	schemeDelimiterConstant             = "://"
	httpsSchemePrefixConstant           = "https://"
	httpSchemePrefixConstant            = "http://"
	sshPathDelimiterConstant            = ":"
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	requiredValueMessageConstant        = "remote url must be provided"
	unrecognizedRemoteMessageConstant   = "unrecognized remote url form"
	emptyRepositoryPathMessageConstant  = "remote url resolves to an empty repository path"
)

// RemoteForm enumerates the recognized remote URL shapes.
type RemoteForm string

// Recognized remote URL shapes.
const (
	RemoteFormSSHShorthand RemoteForm = "ssh-shorthand"
	RemoteFormHTTPS        RemoteForm = "https"
)

// RemoteURL is the structured result of parsing a textual remote URL.
type RemoteURL struct {
	Form RemoteForm
	Host string
	Path string
}

// RelativePath returns the repository path relative to a clone root,
// for example "org/repo" for git@host:org/repo.git.
func (remote RemoteURL) RelativePath() string {
	return remote.Path
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL matches a textual remote URL against the two recognized
// shapes. SSH shorthand is host:path.git where the host segment carries no
// colon or slash; the HTTPS form is http(s)://host/path.git. Both resolve to
// the same repository path for the same logical repository.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	if strings.Contains(trimmedRemote, schemeDelimiterConstant) {
		return parseHTTPSRemote(trimmedRemote)
	}
	return parseSSHShorthandRemote(trimmedRemote)
}

func parseSSHShorthandRemote(remote string) (RemoteURL, error) {
	delimiterIndex := strings.Index(remote, sshPathDelimiterConstant)
	if delimiterIndex <= 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: unrecognizedRemoteMessageConstant}
	}

	hostSegment := remote[:delimiterIndex]
	if strings.Contains(hostSegment, pathSeparatorConstant) {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: unrecognizedRemoteMessageConstant}
	}

	repositoryPath, pathError := stripRepositorySuffix(remote, remote[delimiterIndex+1:])
	if pathError != nil {
		return RemoteURL{}, pathError
	}
	return RemoteURL{Form: RemoteFormSSHShorthand, Host: hostSegment, Path: repositoryPath}, nil
}

func parseHTTPSRemote(remote string) (RemoteURL, error) {
	withoutScheme := ""
	switch {
	case strings.HasPrefix(remote, httpsSchemePrefixConstant):
		withoutScheme = strings.TrimPrefix(remote, httpsSchemePrefixConstant)
	case strings.HasPrefix(remote, httpSchemePrefixConstant):
		withoutScheme = strings.TrimPrefix(remote, httpSchemePrefixConstant)
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: unrecognizedRemoteMessageConstant}
	}

	hostSegment, pathSegment, separatorFound := strings.Cut(withoutScheme, pathSeparatorConstant)
	if !separatorFound || len(hostSegment) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: unrecognizedRemoteMessageConstant}
	}

	repositoryPath, pathError := stripRepositorySuffix(remote, pathSegment)
	if pathError != nil {
		return RemoteURL{}, pathError
	}
	return RemoteURL{Form: RemoteFormHTTPS, Host: hostSegment, Path: repositoryPath}, nil
}

func stripRepositorySuffix(originalRemote string, repositoryPath string) (string, error) {
	if !strings.HasSuffix(repositoryPath, gitSuffixConstant) {
		return "", RemoteURLParseError{Input: originalRemote, Message: unrecognizedRemoteMessageConstant}
	}
	strippedPath := strings.TrimSuffix(repositoryPath, gitSuffixConstant)
	if len(strippedPath) == 0 {
		return "", RemoteURLParseError{Input: originalRemote, Message: emptyRepositoryPathMessageConstant}
	}
	return strippedPath, nil
}
