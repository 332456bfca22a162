//go:build !windows

package reqtree

import "testing"

func TestPleasantPath(t *testing.T) {
	type args struct {
		absolute     string
		root         string
		wd           string
		collapseRoot bool
		omitDotSlash bool
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{name: "NextToFileInRoot_1", args: args{absolute: "/my/reqs/REQ001.yml", root: "/my/reqs", wd: "/my/reqs", collapseRoot: true, omitDotSlash: true}, want: "REQ001.yml"},
		{name: "NextToFileInRoot_2", args: args{absolute: "/my/reqs/REQ001.yml", root: "/my/reqs", wd: "/my/reqs", collapseRoot: true, omitDotSlash: false}, want: "./REQ001.yml"},
		{name: "FileInSubFromRoot_1", args: args{absolute: "/my/reqs/tut/TUT001.yml", root: "/my/reqs", wd: "/my/reqs", collapseRoot: true, omitDotSlash: true}, want: "tut/TUT001.yml"},
		{name: "FileInSubFromRoot_2", args: args{absolute: "/my/reqs/tut/TUT001.yml", root: "/my/reqs", wd: "/my/reqs", collapseRoot: false, omitDotSlash: false}, want: "./tut/TUT001.yml"},
		{name: "FileInRootFromSub", args: args{absolute: "/my/reqs/REQ001.yml", root: "/my/reqs", wd: "/my/reqs/tut", collapseRoot: true, omitDotSlash: false}, want: "../REQ001.yml"},
		{name: "FileInRootFromDeep", args: args{absolute: "/my/reqs/REQ001.yml", root: "/my/reqs", wd: "/my/reqs/tut/llt", collapseRoot: true, omitDotSlash: false}, want: "../../REQ001.yml"},
		{name: "RootFromSub", args: args{absolute: "/my/reqs", root: "/my/reqs", wd: "/my/reqs/tut", collapseRoot: true, omitDotSlash: false}, want: ".."},
		{name: "WorkingDirectoryItself_1", args: args{absolute: "/my/reqs/tut", root: "/my/reqs", wd: "/my/reqs/tut", collapseRoot: true, omitDotSlash: false}, want: "./"},
		{name: "WorkingDirectoryItself_2", args: args{absolute: "/my/reqs/tut", root: "/my/reqs", wd: "/my/reqs/tut", collapseRoot: true, omitDotSlash: true}, want: "."},
		{name: "OutsideTree_1", args: args{absolute: "/my/reqs/tut/TUT001.yml", root: "/my/reqs", wd: "/", collapseRoot: true, omitDotSlash: true}, want: "tree://tut/TUT001.yml"},
		{name: "OutsideTree_2", args: args{absolute: "/my/reqs/tut/TUT001.yml", root: "/my/reqs", wd: "/", collapseRoot: false, omitDotSlash: false}, want: "/my/reqs/tut/TUT001.yml"},
		{name: "BarelyOutsideTree", args: args{absolute: "/my/reqs/tut/TUT001.yml", root: "/my/reqs", wd: "/my", collapseRoot: true, omitDotSlash: false}, want: "tree://tut/TUT001.yml"},
		{name: "TreeRootFromOutside", args: args{absolute: "/my/reqs", root: "/my/reqs", wd: "/my", collapseRoot: true, omitDotSlash: false}, want: "tree://"},
		{name: "UnrelatedWorkingDirectory", args: args{absolute: "/my/reqs/REQ001.yml", root: "/my/reqs", wd: "/elsewhere", collapseRoot: true, omitDotSlash: false}, want: "../my/reqs/REQ001.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pleasantPath(tt.args.absolute, tt.args.root, tt.args.wd, tt.args.collapseRoot, tt.args.omitDotSlash); got != tt.want {
				t.Errorf("pleasantPath() = %v, want %v", got, tt.want)
			}
		})
	}
}
