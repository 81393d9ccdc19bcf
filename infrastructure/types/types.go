package types

type BranchEvent struct {
	Records []Record `json:"Records"`
}

type Record struct {
	AwsRegion            string     `json:"awsRegion"`
	Codecommit           Codecommit `json:"codecommit"`
	CustomData           string     `json:"customData"`
	EventID              string     `json:"eventId"`
	EventName            string     `json:"eventName"`
	EventPartNumber      int64      `json:"eventPartNumber"`
	EventSource          string     `json:"eventSource"`
	EventSourceARN       string     `json:"eventSourceARN"`
	EventTime            string     `json:"eventTime"`
	EventTotalParts      int64      `json:"eventTotalParts"`
	EventTriggerConfigID string     `json:"eventTriggerConfigId"`
	EventTriggerName     string     `json:"eventTriggerName"`
	EventVersion         string     `json:"eventVersion"`
	UserIdentityARN      string     `json:"userIdentityARN"`
}

type Codecommit struct {
	References []Reference `json:"references"`
}

type Reference struct {
	Commit  string `json:"commit"`
	Created *bool  `json:"created"`
	Deleted *bool  `json:"deleted"`
	Ref     string `json:"ref"`
}

type PullEvent struct {
	Account    string   `json:"account"`
	Detail     Detail   `json:"detail"`
	DetailType string   `json:"detail-type"`
	ID         string   `json:"id"`
	Region     string   `json:"region"`
	Resources  []string `json:"resources"`
	Source     string   `json:"source"`
	Time       string   `json:"time"`
	Version    string   `json:"version"`
}

type Detail struct {
	Author               string   `json:"author"`
	CallerUserARN        string   `json:"callerUserArn"`
	CreationDate         string   `json:"creationDate"`
	Description          string   `json:"description"`
	DestinationCommit    string   `json:"destinationCommit"`
	DestinationReference string   `json:"destinationReference"`
	Event                string   `json:"event"`
	IsMerged             string   `json:"isMerged"`
	LastModifiedDate     string   `json:"lastModifiedDate"`
	NotificationBody     string   `json:"notificationBody"`
	PullRequestID        int64    `json:"pullRequestId"`
	PullRequestStatus    string   `json:"pullRequestStatus"`
	RepositoryNames      []string `json:"repositoryNames"`
	SourceCommit         string   `json:"sourceCommit"`
	SourceReference      string   `json:"sourceReference"`
	Title                string   `json:"title"`
}

type TeamsMessage struct {
	Text string `json:"text"`
}
